package media_thumbnail

import (
	"fmt"

	jobrt "github.com/yungbote/designhire-backend/internal/jobs/runtime"
	mediamod "github.com/yungbote/designhire-backend/internal/modules/media"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil || jc.Job == nil {
		return nil
	}
	key := jc.PayloadString("object_key")
	if key == "" {
		return fmt.Errorf("missing object_key")
	}

	jc.Progress("render", 10)
	out, err := mediamod.New(mediamod.UsecasesDeps{
		Log:   p.log,
		Store: p.store,
	}).GenerateThumbnail(jc.Ctx, key)
	if err != nil {
		jc.Fail("render", err)
		return nil
	}

	if profileID, ok := jc.PayloadUUID("profile_id"); ok && p.profiles != nil {
		jc.Progress("attach", 80)
		if err := p.profiles.AttachThumbnail(jc.Ctx, profileID, out.Thumbnail); err != nil {
			jc.Fail("attach", err)
			return nil
		}
	}

	jc.Succeed("done", map[string]any{
		"original":  out.Original,
		"thumbnail": out.Thumbnail,
		"status":    out.Status,
	})
	return nil
}
