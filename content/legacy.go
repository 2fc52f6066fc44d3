package content

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/eringen/folio/kv"
)

// Keys written by the flat, pre-aggregate version of the site. They are only
// read, to migrate into DefaultKey once.
const (
	LegacyKey      = "portfolioData"
	LegacyImageKey = "userProfileImage"
)

// legacyData is the flat record stored under LegacyKey.
type legacyData struct {
	Name         *string `json:"name"`
	HeroTitle    *string `json:"heroTitle"`
	HeroSubtitle *string `json:"heroSubtitle"`
	AboutTitle   *string `json:"aboutTitle"`
	AboutDesc1   *string `json:"aboutDesc1"`
	AboutDesc2   *string `json:"aboutDesc2"`
	AboutDesc3   *string `json:"aboutDesc3"`
	ProfileImage *string `json:"profileImage"`
}

func (l legacyData) patch() Patch {
	return Patch{
		Hero: &HeroPatch{
			Title:       l.HeroTitle,
			Description: l.HeroSubtitle,
		},
		About: &AboutPatch{
			SubTitle:     l.AboutTitle,
			Desc1:        l.AboutDesc1,
			Desc2:        l.AboutDesc2,
			ProfileImage: l.ProfileImage,
		},
	}
}

// migrateLegacy looks for the flat record, then for the lone image key, and
// maps whichever it finds onto the defaults. The result is written under the
// current key so the migration runs once.
func (s *Store) migrateLegacy(ctx context.Context) (SiteContent, bool) {
	var p Patch
	switch raw, err := s.storage.Get(ctx, LegacyKey); {
	case err == nil:
		var l legacyData
		if err := json.Unmarshal(raw, &l); err != nil {
			s.log.Warn("content: legacy record is not decodable, ignoring", "key", LegacyKey, "error", err)
			return SiteContent{}, false
		}
		p = l.patch()
	case errors.Is(err, kv.ErrNotFound):
		img, err := s.storage.Get(ctx, LegacyImageKey)
		if err != nil || len(img) == 0 {
			return SiteContent{}, false
		}
		v := string(img)
		p = Patch{About: &AboutPatch{ProfileImage: &v}}
	default:
		s.log.Warn("content: legacy read failed", "key", LegacyKey, "error", err)
		return SiteContent{}, false
	}

	c := p.Apply(Default())
	if err := s.persist(ctx, c); err != nil {
		s.log.Warn("content: could not write migrated content", "key", s.key, "error", err)
	} else {
		s.log.Info("content: migrated legacy record", "key", s.key)
	}
	return c, true
}
