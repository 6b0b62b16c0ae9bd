package classify

import (
	"fmt"
	"strings"

	"ResearchDigest/internal/domain"
)

func relevancePrompt(batch []*domain.Item, topics []string) string {
	var topicList strings.Builder
	for _, topic := range topics {
		fmt.Fprintf(&topicList, "- %s\n", topic)
	}

	var articles strings.Builder
	for i, item := range batch {
		fmt.Fprintf(&articles, "[%d] Title: %s\nSummary: %s\n\n",
			i+1, item.Title, domain.Truncate(item.Excerpt, 200))
	}

	return fmt.Sprintf(`You are a content filter for a professional research digest.

Topics of interest:
%s
For each article below, decide if it is relevant to ANY of the topics above.
Return ONLY a valid JSON array (no extra text):
[{"id": 1, "score": 8, "relevant": true}, {"id": 2, "score": 3, "relevant": false}, ...]

Score 1-10 (7+ = relevant). Articles:
%s`, topicList.String(), articles.String())
}

func summaryPrompt(batch []domain.ItemReview, topics []string) string {
	var articles strings.Builder
	for i, review := range batch {
		fmt.Fprintf(&articles, "[%d] Title: %s\nContent: %s\n\n",
			i+1, review.Item.Title, domain.Truncate(review.Item.Excerpt, 400))
	}

	return fmt.Sprintf(`Summarize each article in exactly 3 concise bullet points.
Focus on practical insights for readers following these topics: %s.

%s
Format EXACTLY as (no extra text before [1]):
[1]
• First key point
• Second key point
• Third key point
[2]
• First key point
...and so on`, strings.Join(topics, "; "), articles.String())
}

func sentimentPrompt(batch []domain.ItemReview) string {
	var articles strings.Builder
	for i, review := range batch {
		text := strings.Join(review.Bullets, " ")
		if text == "" {
			text = review.Item.Excerpt
		}
		fmt.Fprintf(&articles, "[%d] Title: %s\nText: %s\n\n",
			i+1, review.Item.Title, domain.Truncate(text, 300))
	}

	return fmt.Sprintf(`Classify the overall sentiment of each article as Positive, Negative, or Neutral.
Return ONLY a valid JSON array (no extra text):
[{"id": 1, "sentiment": "Positive"}, {"id": 2, "sentiment": "Neutral"}, ...]

Articles:
%s`, articles.String())
}
