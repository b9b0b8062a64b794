package models

import "encoding/json"

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// ImageBuffer holds raw image bytes. The API serializes stored images as
// Node-style buffer objects ({"type":"Buffer","data":[...]}) whose bytes are
// the UTF-8 text of a data URL, but plain strings are accepted too.
type ImageBuffer struct {
	Data []byte
}

func (b *ImageBuffer) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		b.Data = []byte(s)
		return nil
	}

	var obj struct {
		Data []int `json:"data"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	b.Data = make([]byte, len(obj.Data))
	for i, v := range obj.Data {
		b.Data[i] = byte(v)
	}
	return nil
}

func (b ImageBuffer) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(b.Data))
}

type ProductImage struct {
	ImageURL  ImageBuffer `json:"image_url"`
	AltText   string      `json:"alt_text"`
	IsPrimary bool        `json:"is_primary"`
	SortOrder int         `json:"sort_order"`
}

type Product struct {
	ProductID     int64          `json:"product_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	CostPrice     float64        `json:"cost_price"`
	SKU           string         `json:"sku"`
	StockQuantity int            `json:"stock_quantity"`
	MinStockLevel int            `json:"min_stock_level"`
	Weight        float64        `json:"weight"`
	Dimensions    Dimensions     `json:"dimensions"`
	Attributes    map[string]any `json:"attributes"`
	Images        []ProductImage `json:"images"`
	PrimaryImage  *ImageBuffer   `json:"primary_image,omitempty"`
	IsActive      bool           `json:"is_active"`
}

type ProductList struct {
	Products []Product `json:"products"`
}

// ProductPayload is the create/update request body. The image list travels
// separately through the image endpoints.
type ProductPayload struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	CostPrice     float64        `json:"cost_price"`
	SKU           string         `json:"sku"`
	StockQuantity int            `json:"stock_quantity"`
	MinStockLevel int            `json:"min_stock_level"`
	Weight        float64        `json:"weight"`
	Dimensions    Dimensions     `json:"dimensions"`
	Attributes    map[string]any `json:"attributes"`
}

// ImageUpload is one entry of the batch image upload body. ImageURL carries
// the full data URL of the encoded file.
type ImageUpload struct {
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

type ImageUploadRequest struct {
	Images []ImageUpload `json:"images"`
}
