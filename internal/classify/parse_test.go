package classify

import "testing"

func TestParseVerdictsExtractsArrayFromProse(t *testing.T) {
	t.Parallel()

	raw := "Sure! Here are my judgments:\n[{\"id\": 1, \"score\": 8, \"relevant\": true}, {\"id\": 2, \"score\": 3, \"relevant\": false}]\nLet me know if you need more."

	verdicts, err := parseVerdicts(raw)
	if err != nil {
		t.Fatalf("parseVerdicts error: %v", err)
	}
	if len(verdicts) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(verdicts))
	}
	if verdicts[0].ID != 1 || verdicts[0].Score != 8 || !verdicts[0].Relevant {
		t.Fatalf("unexpected first verdict: %+v", verdicts[0])
	}
	if verdicts[1].Relevant {
		t.Fatalf("second verdict should not be relevant")
	}
}

func TestParseVerdictsAcceptsFractionalScores(t *testing.T) {
	t.Parallel()

	verdicts, err := parseVerdicts(`[{"id": 1, "score": 8.5, "relevant": true}]`)
	if err != nil {
		t.Fatalf("parseVerdicts error: %v", err)
	}
	if len(verdicts) != 1 || verdicts[0].Score != 8.5 {
		t.Fatalf("unexpected verdicts: %+v", verdicts)
	}
}

func TestParseVerdictsRejectsMissingArray(t *testing.T) {
	t.Parallel()

	if _, err := parseVerdicts("I cannot answer that."); err == nil {
		t.Fatal("expected error for response without array")
	}
}

func TestParseVerdictsRejectsBrokenJSON(t *testing.T) {
	t.Parallel()

	if _, err := parseVerdicts(`[{"id": 1, "score": }]`); err == nil {
		t.Fatal("expected error for broken JSON")
	}
}

func TestSplitSections(t *testing.T) {
	t.Parallel()

	raw := "[1]\n• Point A\n• Point B\n[2]\n• Point C\n"

	sections := splitSections(raw)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1] != "• Point A\n• Point B" {
		t.Fatalf("unexpected first section: %q", sections[1])
	}
	if sections[2] != "• Point C" {
		t.Fatalf("unexpected second section: %q", sections[2])
	}
}

func TestSplitSectionsSkipsEmptyBlocks(t *testing.T) {
	t.Parallel()

	sections := splitSections("[1]\n\n[2]\n• only point")
	if _, ok := sections[1]; ok {
		t.Fatal("empty block should not be mapped")
	}
	if sections[2] != "• only point" {
		t.Fatalf("unexpected section: %q", sections[2])
	}
}

func TestParseBullets(t *testing.T) {
	t.Parallel()

	bullets := parseBullets("• First\n- Second\n\n* Third ")
	if len(bullets) != 3 {
		t.Fatalf("expected 3 bullets, got %d: %v", len(bullets), bullets)
	}
	if bullets[0] != "First" || bullets[1] != "Second" || bullets[2] != "Third" {
		t.Fatalf("unexpected bullets: %v", bullets)
	}
}
