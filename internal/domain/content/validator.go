package content

import (
	"fmt"
	"strconv"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

// Validator normalizes untrusted upstream payloads into typed entities.
// Missing or mistyped fields are substituted with safe defaults and recorded
// as errors; unparseable array elements are dropped rather than failing the
// payload. Validation never returns a Go error: the only nil result is a
// top-level value that is not a JSON object at all.
type Validator struct {
	errs []string
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Errors returns the accumulated field errors from the last validation.
func (v *Validator) Errors() []string {
	out := make([]string, len(v.errs))
	copy(out, v.errs)
	return out
}

// HasErrors reports whether the last validation recorded any problems.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Validate normalizes raw JSON (already unmarshalled to map[string]any) for a
// route. The result is the route's typed payload, or nil when raw is not an
// object.
func (v *Validator) Validate(route navigation.Route, raw any) any {
	v.errs = v.errs[:0]

	obj, ok := raw.(map[string]any)
	if !ok {
		v.record("payload", "not a JSON object")
		return nil
	}

	switch route {
	case navigation.RouteMain:
		return v.validateMain(obj)
	case navigation.RouteCollections:
		return v.validateCollections(obj)
	case navigation.RouteScreenshots:
		return v.validateScreenshots(obj)
	case navigation.RouteVideos:
		return v.validateVideos(obj)
	case navigation.RouteHistory:
		return v.validateHistory(obj)
	case navigation.RouteAbout:
		return v.validateAbout(obj)
	default:
		v.record("route", fmt.Sprintf("unknown route %q", route))
		return nil
	}
}

func (v *Validator) record(field, problem string) {
	v.errs = append(v.errs, fmt.Sprintf("%s: %s", field, problem))
}

// requireString returns obj[key] as a string, recording an error and
// substituting empty when the field is missing or not a string. Numbers are
// coerced rather than dropped.
func (v *Validator) requireString(obj map[string]any, key, scope string) string {
	val, exists := obj[key]
	if !exists {
		v.record(scope+"."+key, "missing")
		return ""
	}
	return v.coerceString(val, scope+"."+key)
}

// optionalString returns obj[key] as a string without recording an error for
// absence; a present-but-mistyped value is still recorded and coerced.
func (v *Validator) optionalString(obj map[string]any, key, scope string) string {
	val, exists := obj[key]
	if !exists {
		return ""
	}
	return v.coerceString(val, scope+"."+key)
}

func (v *Validator) coerceString(val any, scope string) string {
	switch s := val.(type) {
	case string:
		return s
	case float64:
		v.record(scope, "expected string, coerced number")
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		v.record(scope, "expected string, coerced bool")
		return strconv.FormatBool(s)
	default:
		v.record(scope, "wrong type, substituted empty")
		return ""
	}
}

// stringSlice filters obj[key] down to its string elements, dropping anything
// else. Absence yields nil without an error; a non-array value is recorded.
func (v *Validator) stringSlice(obj map[string]any, key, scope string) []string {
	val, exists := obj[key]
	if !exists {
		return nil
	}
	arr, ok := val.([]any)
	if !ok {
		v.record(scope+"."+key, "expected array, substituted empty")
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			v.record(fmt.Sprintf("%s.%s[%d]", scope, key, i), "not a string, dropped")
			continue
		}
		out = append(out, s)
	}
	return out
}

// objectSlice returns obj[key]'s object elements, dropping non-objects.
func (v *Validator) objectSlice(obj map[string]any, key, scope string, required bool) []map[string]any {
	val, exists := obj[key]
	if !exists {
		if required {
			v.record(scope+"."+key, "missing")
		}
		return nil
	}
	arr, ok := val.([]any)
	if !ok {
		v.record(scope+"."+key, "expected array, substituted empty")
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			v.record(fmt.Sprintf("%s.%s[%d]", scope, key, i), "not an object, dropped")
			continue
		}
		out = append(out, m)
	}
	return out
}

func (v *Validator) validateMain(obj map[string]any) *MainPayload {
	payload := &MainPayload{Posts: make([]Post, 0)}

	for i, raw := range v.objectSlice(obj, "posts", "main", true) {
		scope := fmt.Sprintf("main.posts[%d]", i)
		post := Post{
			ID:          v.optionalString(raw, "id", scope),
			Title:       v.requireString(raw, "title", scope),
			Description: v.optionalString(raw, "description", scope),
			MainImage:   v.requireString(raw, "mainImage", scope),
			Screenshots: v.stringSlice(raw, "screenshots", scope),
			Tags:        v.stringSlice(raw, "tags", scope),
			Date:        v.optionalString(raw, "date", scope),
		}
		if videoRaw, exists := raw["video"]; exists {
			if videoObj, ok := videoRaw.(map[string]any); ok {
				post.Video = &VideoRef{
					Thumbnail: v.optionalString(videoObj, "thumbnail", scope+".video"),
					URL:       v.requireString(videoObj, "url", scope+".video"),
				}
			} else {
				v.record(scope+".video", "expected object, dropped")
			}
		}
		payload.Posts = append(payload.Posts, post)
	}

	return payload
}

func (v *Validator) validateCollections(obj map[string]any) *CollectionsPayload {
	payload := &CollectionsPayload{Collections: make([]Collection, 0)}

	for i, raw := range v.objectSlice(obj, "collections", "collections", true) {
		scope := fmt.Sprintf("collections[%d]", i)
		col := Collection{
			ID:    v.optionalString(raw, "id", scope),
			Name:  v.requireString(raw, "name", scope),
			Cover: v.requireString(raw, "cover", scope),
			Items: make([]CollectionItem, 0),
		}
		for j, itemRaw := range v.objectSlice(raw, "items", scope, false) {
			itemScope := fmt.Sprintf("%s.items[%d]", scope, j)
			col.Items = append(col.Items, CollectionItem{
				Title: v.requireString(itemRaw, "title", itemScope),
				Image: v.requireString(itemRaw, "image", itemScope),
				Link:  v.optionalString(itemRaw, "link", itemScope),
			})
		}
		payload.Collections = append(payload.Collections, col)
	}

	return payload
}

func (v *Validator) validateScreenshots(obj map[string]any) *ScreenshotsPayload {
	payload := &ScreenshotsPayload{Groups: make([]ScreenshotGroup, 0)}

	for i, raw := range v.objectSlice(obj, "groups", "screenshots", true) {
		scope := fmt.Sprintf("screenshots.groups[%d]", i)
		group := ScreenshotGroup{
			Name:   v.requireString(raw, "name", scope),
			Images: v.stringSlice(raw, "images", scope),
		}
		if group.Images == nil {
			group.Images = make([]string, 0)
		}
		payload.Groups = append(payload.Groups, group)
	}

	return payload
}

func (v *Validator) validateVideos(obj map[string]any) *VideosPayload {
	payload := &VideosPayload{Videos: make([]Video, 0)}

	for i, raw := range v.objectSlice(obj, "videos", "videos", true) {
		scope := fmt.Sprintf("videos[%d]", i)
		payload.Videos = append(payload.Videos, Video{
			ID:        v.optionalString(raw, "id", scope),
			Title:     v.requireString(raw, "title", scope),
			Thumbnail: v.requireString(raw, "thumbnail", scope),
			URL:       v.requireString(raw, "url", scope),
			Duration:  v.optionalString(raw, "duration", scope),
		})
	}

	return payload
}

func (v *Validator) validateHistory(obj map[string]any) *HistoryPayload {
	payload := &HistoryPayload{Entries: make([]HistoryEntry, 0)}

	for i, raw := range v.objectSlice(obj, "entries", "history", true) {
		scope := fmt.Sprintf("history.entries[%d]", i)
		payload.Entries = append(payload.Entries, HistoryEntry{
			Date:   v.requireString(raw, "date", scope),
			Title:  v.requireString(raw, "title", scope),
			Text:   v.optionalString(raw, "text", scope),
			Images: v.stringSlice(raw, "images", scope),
		})
	}

	return payload
}

func (v *Validator) validateAbout(obj map[string]any) *AboutPayload {
	payload := &AboutPayload{}

	profileRaw, exists := obj["profile"]
	profileObj, ok := profileRaw.(map[string]any)
	if !exists || !ok {
		if !exists {
			v.record("about.profile", "missing")
		} else {
			v.record("about.profile", "expected object, substituted empty")
		}
		return payload
	}

	payload.Profile = Profile{
		Name:   v.requireString(profileObj, "name", "about.profile"),
		Avatar: v.requireString(profileObj, "avatar", "about.profile"),
		Bio:    v.optionalString(profileObj, "bio", "about.profile"),
		Links:  make([]ProfileLink, 0),
	}

	for i, linkRaw := range v.objectSlice(profileObj, "links", "about.profile", false) {
		scope := fmt.Sprintf("about.profile.links[%d]", i)
		payload.Profile.Links = append(payload.Profile.Links, ProfileLink{
			Label: v.requireString(linkRaw, "label", scope),
			URL:   v.requireString(linkRaw, "url", scope),
		})
	}

	return payload
}
