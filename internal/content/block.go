package content

import (
	"bytes"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
)

// BlockType tags one section of a page's content sequence.
type BlockType string

const (
	BlockHero            BlockType = "hero"
	BlockTextSection     BlockType = "text_section"
	BlockImageGallery    BlockType = "image_gallery"
	BlockDetailedGallery BlockType = "detailed_gallery"
	BlockTextWithImage   BlockType = "text_with_image"
	BlockFAQ             BlockType = "faq"
	BlockModelList       BlockType = "model_list"
)

// KnownTypes lists every block type the schema recognizes, in form order.
var KnownTypes = []BlockType{
	BlockHero,
	BlockTextSection,
	BlockImageGallery,
	BlockDetailedGallery,
	BlockTextWithImage,
	BlockFAQ,
	BlockModelList,
}

// Known reports whether t is part of the closed block-type set.
func Known(t BlockType) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Block is one typed unit of page content. Data stays raw so payload fields
// the schema does not know about survive storage and export untouched.
type Block struct {
	Type BlockType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Blocks is the ordered content sequence of a page.
type Blocks []Block

var ErrContentNotArray = errors.New("content must be an array of blocks")

// ParseBlocks decodes a stored or submitted content column. Empty and null
// inputs yield an empty sequence.
func ParseBlocks(raw []byte) (Blocks, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Blocks{}, nil
	}

	var blocks Blocks
	if err := json.Unmarshal(trimmed, &blocks); err != nil {
		return nil, ErrContentNotArray
	}
	return blocks, nil
}

// JSON serializes the sequence for the database column. An empty sequence
// stores as an empty array rather than null so round-trips stay stable.
func (b Blocks) JSON() (datatypes.JSON, error) {
	if b == nil {
		b = Blocks{}
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// HeroData is the payload of a hero block.
type HeroData struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// TextSectionData is the payload of a text_section block.
type TextSectionData struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// ImageGalleryData is the payload of an image_gallery block. Image order is
// authoring order and must be preserved.
type ImageGalleryData struct {
	Title  string   `json:"title,omitempty"`
	Images []string `json:"images"`
}

// GalleryItem is one entry of a detailed_gallery block.
type GalleryItem struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// DetailedGalleryData is the payload of a detailed_gallery block.
type DetailedGalleryData struct {
	SectionTitle string        `json:"section_title,omitempty"`
	Items        []GalleryItem `json:"items"`
}

// Image positions accepted by text_with_image.
const (
	ImagePositionLeft  = "left"
	ImagePositionRight = "right"
)

// TextWithImageData is the payload of a text_with_image block.
type TextWithImageData struct {
	Title         string `json:"title,omitempty"`
	Text          string `json:"text"`
	Image         string `json:"image,omitempty"`
	ImagePosition string `json:"image_position,omitempty"`
}

// FAQItem is one question/answer pair of a faq block.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQData is the payload of a faq block.
type FAQData struct {
	SectionTitle       string    `json:"section_title,omitempty"`
	SectionDescription string    `json:"section_description,omitempty"`
	Items              []FAQItem `json:"items"`
}

// Collections a model_list block may reference.
const (
	ModelArticles   = "articles"
	ModelNews       = "news"
	ModelCategories = "categories"
)

// Orderings a model_list block may request.
const (
	OrderCreatedAtDesc = "created_at_desc"
	OrderCreatedAtAsc  = "created_at_asc"
	OrderTitleAsc      = "title_asc"
	OrderTitleDesc     = "title_desc"
)

// model_list limit bounds and default.
const (
	ModelListLimitMin     = 1
	ModelListLimitMax     = 50
	ModelListLimitDefault = 4
)

// ModelListData is the stored payload of a model_list block. It is a
// reference only; resolved items never live here.
type ModelListData struct {
	Title   string `json:"title,omitempty"`
	Model   string `json:"model"`
	Limit   int    `json:"limit,omitempty"`
	OrderBy string `json:"order_by,omitempty"`
}

// ApplyDefaults fills the limit and ordering a reference omits.
func (d *ModelListData) ApplyDefaults() {
	if d.Limit <= 0 {
		d.Limit = ModelListLimitDefault
	}
	if d.OrderBy == "" {
		d.OrderBy = OrderCreatedAtDesc
	}
}
