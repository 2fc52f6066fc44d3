// Package content owns the site's editable content aggregate: its shape, the
// built-in defaults, the persisted store and the operations on the "latest
// updates" collection.
package content

// SiteContent is the single persisted aggregate holding all editable page
// text and media.
type SiteContent struct {
	Hero    Hero         `json:"hero"`
	About   About        `json:"about"`
	Updates []UpdateItem `json:"updates"`
}

// Hero is the banner at the top of the page. Title may span several lines.
type Hero struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// About is the biography section. ProfileImage is an inline image string;
// when empty the default asset is shown.
type About struct {
	MainTitle    string `json:"mainTitle"`
	SubTitle     string `json:"subTitle"`
	Desc1        string `json:"desc1"`
	Desc2        string `json:"desc2"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// UpdateItem is one card of the "latest updates" gallery. Date is a display
// label and is never parsed. Image is an inline image string or a URL.
type UpdateItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Clone returns a deep copy of c.
func (c SiteContent) Clone() SiteContent {
	out := c
	if c.Updates != nil {
		out.Updates = make([]UpdateItem, len(c.Updates))
		copy(out.Updates, c.Updates)
	}
	return out
}

// IDs returns the update ids in display order.
func (c SiteContent) IDs() []int64 {
	ids := make([]int64, len(c.Updates))
	for i, it := range c.Updates {
		ids[i] = it.ID
	}
	return ids
}
