package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldKind classifies what an authoring form should render for a field.
type FieldKind string

const (
	FieldString    FieldKind = "string"
	FieldRichText  FieldKind = "rich_text"
	FieldImage     FieldKind = "image"
	FieldImageList FieldKind = "image_list"
	FieldEnum      FieldKind = "enum"
	FieldInt       FieldKind = "int"
	FieldItemList  FieldKind = "item_list"
)

// FieldSpec describes one payload field of a block type.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	Enum     []string
	Default  string
	Min      int
	Max      int
	Items    []FieldSpec
}

var blockSpecs = map[BlockType][]FieldSpec{
	BlockHero: {
		{Name: "title", Kind: FieldString, Required: true},
		{Name: "text", Kind: FieldRichText},
		{Name: "image", Kind: FieldImage},
	},
	BlockTextSection: {
		{Name: "title", Kind: FieldString},
		{Name: "text", Kind: FieldRichText, Required: true},
	},
	BlockImageGallery: {
		{Name: "title", Kind: FieldString},
		{Name: "images", Kind: FieldImageList, Required: true, Min: 1},
	},
	BlockDetailedGallery: {
		{Name: "section_title", Kind: FieldString},
		{Name: "items", Kind: FieldItemList, Required: true, Min: 1, Items: []FieldSpec{
			{Name: "title", Kind: FieldString, Required: true},
			{Name: "image", Kind: FieldImage, Required: true},
			{Name: "description", Kind: FieldString},
		}},
	},
	BlockTextWithImage: {
		{Name: "title", Kind: FieldString},
		{Name: "text", Kind: FieldRichText, Required: true},
		{Name: "image", Kind: FieldImage},
		{Name: "image_position", Kind: FieldEnum, Enum: []string{ImagePositionLeft, ImagePositionRight}, Default: ImagePositionRight},
	},
	BlockFAQ: {
		{Name: "section_title", Kind: FieldString},
		{Name: "section_description", Kind: FieldString},
		{Name: "items", Kind: FieldItemList, Required: true, Min: 1, Items: []FieldSpec{
			{Name: "question", Kind: FieldString, Required: true},
			{Name: "answer", Kind: FieldRichText, Required: true},
		}},
	},
	BlockModelList: {
		{Name: "title", Kind: FieldString},
		{Name: "model", Kind: FieldEnum, Required: true, Enum: []string{ModelArticles, ModelNews, ModelCategories}},
		{Name: "limit", Kind: FieldInt, Min: ModelListLimitMin, Max: ModelListLimitMax, Default: "4"},
		{Name: "order_by", Kind: FieldEnum, Enum: []string{OrderCreatedAtDesc, OrderCreatedAtAsc, OrderTitleAsc, OrderTitleDesc}, Default: OrderCreatedAtDesc},
	},
}

// Spec returns the field specification for a block type.
func Spec(t BlockType) ([]FieldSpec, bool) {
	spec, ok := blockSpecs[t]
	return spec, ok
}

// ValidateBlocks checks every block of a sequence and returns the full list
// of violations, prefixed with the block's position.
func ValidateBlocks(blocks Blocks) []string {
	var violations []string
	for i, block := range blocks {
		for _, v := range ValidateBlock(block) {
			violations = append(violations, fmt.Sprintf("blocks.%d: %s", i, v))
		}
	}
	return violations
}

// ValidateBlock checks a single block against its type's schema. The block
// is rejected, never coerced: a violation means the caller must not persist.
func ValidateBlock(block Block) []string {
	if !Known(block.Type) {
		return []string{fmt.Sprintf("unknown block type %q", block.Type)}
	}

	switch block.Type {
	case BlockHero:
		var data HeroData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		return requireString(nil, "title", data.Title)
	case BlockTextSection:
		var data TextSectionData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		return requireString(nil, "text", data.Text)
	case BlockImageGallery:
		var data ImageGalleryData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		if len(data.Images) == 0 {
			return []string{"images must contain at least 1 image"}
		}
		return nil
	case BlockDetailedGallery:
		var data DetailedGalleryData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		return validateDetailedGallery(data)
	case BlockTextWithImage:
		var data TextWithImageData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		violations := requireString(nil, "text", data.Text)
		if data.ImagePosition != "" &&
			data.ImagePosition != ImagePositionLeft &&
			data.ImagePosition != ImagePositionRight {
			violations = append(violations, fmt.Sprintf("image_position must be %s or %s", ImagePositionLeft, ImagePositionRight))
		}
		return violations
	case BlockFAQ:
		var data FAQData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		return validateFAQ(data)
	case BlockModelList:
		var data ModelListData
		if bad := decodeData(block.Data, &data); bad != nil {
			return bad
		}
		return validateModelList(data)
	}

	return nil
}

func validateDetailedGallery(data DetailedGalleryData) []string {
	if len(data.Items) == 0 {
		return []string{"items must contain at least 1 item"}
	}
	var violations []string
	for i, item := range data.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		violations = requireString(violations, prefix+"title", item.Title)
		violations = requireString(violations, prefix+"image", item.Image)
	}
	return violations
}

func validateFAQ(data FAQData) []string {
	if len(data.Items) == 0 {
		return []string{"items must contain at least 1 item"}
	}
	var violations []string
	for i, item := range data.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		violations = requireString(violations, prefix+"question", item.Question)
		violations = requireString(violations, prefix+"answer", item.Answer)
	}
	return violations
}

func validateModelList(data ModelListData) []string {
	var violations []string
	switch data.Model {
	case "":
		violations = append(violations, "model is required")
	case ModelArticles, ModelNews, ModelCategories:
	default:
		violations = append(violations, fmt.Sprintf("model must be one of %s, %s, %s", ModelArticles, ModelNews, ModelCategories))
	}

	if data.Limit != 0 && (data.Limit < ModelListLimitMin || data.Limit > ModelListLimitMax) {
		violations = append(violations, fmt.Sprintf("limit must be between %d and %d", ModelListLimitMin, ModelListLimitMax))
	}

	switch data.OrderBy {
	case "", OrderCreatedAtDesc, OrderCreatedAtAsc, OrderTitleAsc, OrderTitleDesc:
	default:
		violations = append(violations, "order_by is not a recognized ordering")
	}

	return violations
}

func decodeData(raw json.RawMessage, dst any) []string {
	if len(raw) == 0 {
		return []string{"data is required"}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return []string{"data does not match the block schema"}
	}
	return nil
}

func requireString(violations []string, name, value string) []string {
	if strings.TrimSpace(value) == "" {
		violations = append(violations, name+" is required")
	}
	return violations
}
