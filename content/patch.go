package content

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned for a field key that names no editable field.
var ErrUnknownField = errors.New("content: unknown field")

// HeroPatch holds the hero fields to change; nil fields are left alone.
type HeroPatch struct {
	Badge       *string
	Title       *string
	Description *string
}

// AboutPatch holds the about fields to change; nil fields are left alone.
type AboutPatch struct {
	MainTitle    *string
	SubTitle     *string
	Desc1        *string
	Desc2        *string
	ProfileImage *string
}

// Patch is a partial SiteContent. Hero and About are merged field by field;
// a non-nil Updates replaces the whole collection.
type Patch struct {
	Hero    *HeroPatch
	About   *AboutPatch
	Updates []UpdateItem
}

// Apply returns c with p merged in. c is not modified.
func (p Patch) Apply(c SiteContent) SiteContent {
	out := c.Clone()
	if h := p.Hero; h != nil {
		setIf(&out.Hero.Badge, h.Badge)
		setIf(&out.Hero.Title, h.Title)
		setIf(&out.Hero.Description, h.Description)
	}
	if a := p.About; a != nil {
		setIf(&out.About.MainTitle, a.MainTitle)
		setIf(&out.About.SubTitle, a.SubTitle)
		setIf(&out.About.Desc1, a.Desc1)
		setIf(&out.About.Desc2, a.Desc2)
		setIf(&out.About.ProfileImage, a.ProfileImage)
	}
	if p.Updates != nil {
		out.Updates = make([]UpdateItem, len(p.Updates))
		copy(out.Updates, p.Updates)
	}
	return out
}

// Merge folds q into p; fields set in q win.
func (p Patch) Merge(q Patch) Patch {
	if q.Hero != nil {
		if p.Hero == nil {
			p.Hero = &HeroPatch{}
		}
		h := *p.Hero
		pickIf(&h.Badge, q.Hero.Badge)
		pickIf(&h.Title, q.Hero.Title)
		pickIf(&h.Description, q.Hero.Description)
		p.Hero = &h
	}
	if q.About != nil {
		if p.About == nil {
			p.About = &AboutPatch{}
		}
		a := *p.About
		pickIf(&a.MainTitle, q.About.MainTitle)
		pickIf(&a.SubTitle, q.About.SubTitle)
		pickIf(&a.Desc1, q.About.Desc1)
		pickIf(&a.Desc2, q.About.Desc2)
		pickIf(&a.ProfileImage, q.About.ProfileImage)
		p.About = &a
	}
	if q.Updates != nil {
		p.Updates = q.Updates
	}
	return p
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func pickIf(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}

// ProfileImageKey names the inline profile image. On the page it only
// changes through an image upload, never as free text.
const ProfileImageKey = "about.profileImage"

// Field keys accepted by FieldPatch, in page order.
var FieldKeys = []string{
	"hero.badge",
	"hero.title",
	"hero.description",
	"about.mainTitle",
	"about.subTitle",
	"about.desc1",
	"about.desc2",
	"about.profileImage",
}

// FieldPatch builds a Patch that sets the single field named by key
// ("section.field") to value.
func FieldPatch(key, value string) (Patch, error) {
	v := value
	switch key {
	case "hero.badge":
		return Patch{Hero: &HeroPatch{Badge: &v}}, nil
	case "hero.title":
		return Patch{Hero: &HeroPatch{Title: &v}}, nil
	case "hero.description":
		return Patch{Hero: &HeroPatch{Description: &v}}, nil
	case "about.mainTitle":
		return Patch{About: &AboutPatch{MainTitle: &v}}, nil
	case "about.subTitle":
		return Patch{About: &AboutPatch{SubTitle: &v}}, nil
	case "about.desc1":
		return Patch{About: &AboutPatch{Desc1: &v}}, nil
	case "about.desc2":
		return Patch{About: &AboutPatch{Desc2: &v}}, nil
	case "about.profileImage":
		return Patch{About: &AboutPatch{ProfileImage: &v}}, nil
	}
	return Patch{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// TextFieldPatch is FieldPatch limited to the text fields edited in place.
func TextFieldPatch(key, value string) (Patch, error) {
	if key == ProfileImageKey {
		return Patch{}, fmt.Errorf("%w: %q is set by image upload", ErrUnknownField, key)
	}
	return FieldPatch(key, value)
}

// FieldsPatch folds several field edits into one Patch. Keys are applied in
// FieldKeys order so the result does not depend on map iteration.
func FieldsPatch(fields map[string]string) (Patch, error) {
	var p Patch
	seen := 0
	for _, key := range FieldKeys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		seen++
		fp, err := FieldPatch(key, v)
		if err != nil {
			return Patch{}, err
		}
		p = p.Merge(fp)
	}
	if seen != len(fields) {
		for key := range fields {
			if _, err := FieldPatch(key, ""); err != nil {
				return Patch{}, err
			}
		}
	}
	return p, nil
}

// FieldValue returns the current value of the field named by key.
func (c SiteContent) FieldValue(key string) (string, error) {
	switch key {
	case "hero.badge":
		return c.Hero.Badge, nil
	case "hero.title":
		return c.Hero.Title, nil
	case "hero.description":
		return c.Hero.Description, nil
	case "about.mainTitle":
		return c.About.MainTitle, nil
	case "about.subTitle":
		return c.About.SubTitle, nil
	case "about.desc1":
		return c.About.Desc1, nil
	case "about.desc2":
		return c.About.Desc2, nil
	case "about.profileImage":
		return c.About.ProfileImage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
}
