package content

import (
	"encoding/json"
	"strings"
	"testing"
)

func mustBlock(t *testing.T, blockType BlockType, data any) Block {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal block data: %v", err)
	}
	return Block{Type: blockType, Data: raw}
}

func TestSpecCoversEveryKnownType(t *testing.T) {
	for _, blockType := range KnownTypes {
		if _, ok := Spec(blockType); !ok {
			t.Fatalf("no field spec for %s", blockType)
		}
	}
	if _, ok := Spec(BlockType("bogus")); ok {
		t.Fatal("expected no spec for an unknown type")
	}
}

func TestValidateBlockUnknownType(t *testing.T) {
	violations := ValidateBlock(Block{Type: "carousel", Data: json.RawMessage(`{}`)})
	if len(violations) != 1 || !strings.Contains(violations[0], "unknown block type") {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestValidateHero(t *testing.T) {
	if v := ValidateBlock(mustBlock(t, BlockHero, map[string]any{"title": "Hi"})); len(v) != 0 {
		t.Fatalf("valid hero rejected: %v", v)
	}
	if v := ValidateBlock(mustBlock(t, BlockHero, map[string]any{"text": "<p>no title</p>"})); len(v) == 0 {
		t.Fatal("hero without title must be rejected")
	}
	if v := ValidateBlock(Block{Type: BlockHero}); len(v) == 0 {
		t.Fatal("hero without data must be rejected")
	}
}

func TestValidateTextSection(t *testing.T) {
	if v := ValidateBlock(mustBlock(t, BlockTextSection, map[string]any{"text": "<p>body</p>"})); len(v) != 0 {
		t.Fatalf("valid text_section rejected: %v", v)
	}
	if v := ValidateBlock(mustBlock(t, BlockTextSection, map[string]any{"title": "only title"})); len(v) == 0 {
		t.Fatal("text_section without text must be rejected")
	}
}

func TestValidateImageGallery(t *testing.T) {
	valid := map[string]any{"images": []string{"a.jpg", "b.jpg"}}
	if v := ValidateBlock(mustBlock(t, BlockImageGallery, valid)); len(v) != 0 {
		t.Fatalf("valid image_gallery rejected: %v", v)
	}
	if v := ValidateBlock(mustBlock(t, BlockImageGallery, map[string]any{"images": []string{}})); len(v) == 0 {
		t.Fatal("empty image_gallery must be rejected")
	}
}

func TestValidateDetailedGallery(t *testing.T) {
	valid := map[string]any{
		"section_title": "Clients",
		"items": []map[string]any{
			{"title": "Acme", "image": "acme.png", "description": "partner"},
		},
	}
	if v := ValidateBlock(mustBlock(t, BlockDetailedGallery, valid)); len(v) != 0 {
		t.Fatalf("valid detailed_gallery rejected: %v", v)
	}

	missingImage := map[string]any{
		"items": []map[string]any{{"title": "Acme"}},
	}
	violations := ValidateBlock(mustBlock(t, BlockDetailedGallery, missingImage))
	if len(violations) != 1 || !strings.Contains(violations[0], "items.0.image") {
		t.Fatalf("unexpected violations: %v", violations)
	}

	if v := ValidateBlock(mustBlock(t, BlockDetailedGallery, map[string]any{"items": []any{}})); len(v) == 0 {
		t.Fatal("detailed_gallery without items must be rejected")
	}
}

func TestValidateTextWithImage(t *testing.T) {
	valid := map[string]any{"text": "<p>body</p>", "image_position": "left"}
	if v := ValidateBlock(mustBlock(t, BlockTextWithImage, valid)); len(v) != 0 {
		t.Fatalf("valid text_with_image rejected: %v", v)
	}

	badPosition := map[string]any{"text": "<p>body</p>", "image_position": "center"}
	if v := ValidateBlock(mustBlock(t, BlockTextWithImage, badPosition)); len(v) == 0 {
		t.Fatal("invalid image_position must be rejected")
	}
}

func TestValidateFAQ(t *testing.T) {
	valid := map[string]any{
		"items": []map[string]any{{"question": "Q?", "answer": "<p>A</p>"}},
	}
	if v := ValidateBlock(mustBlock(t, BlockFAQ, valid)); len(v) != 0 {
		t.Fatalf("valid faq rejected: %v", v)
	}

	missingAnswer := map[string]any{
		"items": []map[string]any{{"question": "Q?"}},
	}
	violations := ValidateBlock(mustBlock(t, BlockFAQ, missingAnswer))
	if len(violations) != 1 || !strings.Contains(violations[0], "items.0.answer") {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestValidateModelList(t *testing.T) {
	valid := map[string]any{"model": "articles", "limit": 4, "order_by": "title_asc"}
	if v := ValidateBlock(mustBlock(t, BlockModelList, valid)); len(v) != 0 {
		t.Fatalf("valid model_list rejected: %v", v)
	}

	if v := ValidateBlock(mustBlock(t, BlockModelList, map[string]any{})); len(v) == 0 {
		t.Fatal("model_list without model must be rejected")
	}

	badModel := map[string]any{"model": "users"}
	if v := ValidateBlock(mustBlock(t, BlockModelList, badModel)); len(v) == 0 {
		t.Fatal("model outside the closed set must be rejected")
	}

	for _, limit := range []int{0, 51, -3} {
		data := map[string]any{"model": "news", "limit": limit}
		violations := ValidateBlock(mustBlock(t, BlockModelList, data))
		if limit == 0 {
			if len(violations) != 0 {
				t.Fatalf("limit 0 means unset and must pass, got %v", violations)
			}
			continue
		}
		if len(violations) == 0 {
			t.Fatalf("limit %d outside bounds must be rejected", limit)
		}
	}

	badOrder := map[string]any{"model": "news", "order_by": "random"}
	if v := ValidateBlock(mustBlock(t, BlockModelList, badOrder)); len(v) == 0 {
		t.Fatal("unrecognized order_by must be rejected at authoring time")
	}
}

func TestValidateBlocksPrefixesPositions(t *testing.T) {
	blocks := Blocks{
		mustBlock(t, BlockHero, map[string]any{"title": "ok"}),
		mustBlock(t, BlockHero, map[string]any{}),
	}

	violations := ValidateBlocks(blocks)
	if len(violations) != 1 || !strings.HasPrefix(violations[0], "blocks.1:") {
		t.Fatalf("unexpected violations: %v", violations)
	}
}
