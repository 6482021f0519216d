// Package content defines the gallery's content payload entities and their
// defensive validation from untrusted upstream JSON.
package content

// Post is a single entry on the main feed.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MainImage   string    `json:"mainImage"`
	Screenshots []string  `json:"screenshots,omitempty"`
	Video       *VideoRef `json:"video,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Date        string    `json:"date,omitempty"`
}

// VideoRef points at a playable video and its poster image.
type VideoRef struct {
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

// Collection groups related items under a cover image.
type Collection struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Cover string           `json:"cover"`
	Items []CollectionItem `json:"items,omitempty"`
}

// CollectionItem is one entry inside a collection.
type CollectionItem struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// ScreenshotGroup is a named set of screenshots.
type ScreenshotGroup struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// Video is a standalone entry on the videos page.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
	Duration  string `json:"duration,omitempty"`
}

// HistoryEntry is a dated changelog/history item.
type HistoryEntry struct {
	Date   string   `json:"date"`
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
}

// ProfileLink is an external link on the about page.
type ProfileLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Profile is the about-page subject.
type Profile struct {
	Name   string        `json:"name"`
	Avatar string        `json:"avatar"`
	Bio    string        `json:"bio"`
	Links  []ProfileLink `json:"links,omitempty"`
}

// MainPayload backs the main feed route.
type MainPayload struct {
	Posts []Post `json:"posts"`
}

// CollectionsPayload backs the collections route.
type CollectionsPayload struct {
	Collections []Collection `json:"collections"`
}

// ScreenshotsPayload backs the screenshots route.
type ScreenshotsPayload struct {
	Groups []ScreenshotGroup `json:"groups"`
}

// VideosPayload backs the videos route.
type VideosPayload struct {
	Videos []Video `json:"videos"`
}

// HistoryPayload backs the history route.
type HistoryPayload struct {
	Entries []HistoryEntry `json:"entries"`
}

// AboutPayload backs the about route.
type AboutPayload struct {
	Profile Profile `json:"profile"`
}

// MediaURLSet is the set of media URLs referenced by a payload, derived on
// demand to drive prefetching. It is never persisted.
type MediaURLSet struct {
	ImageURLs []string
	VideoURLs []string
}

func (s *MediaURLSet) addImage(url string) {
	if url != "" {
		s.ImageURLs = append(s.ImageURLs, url)
	}
}

func (s *MediaURLSet) addVideo(url string) {
	if url != "" {
		s.VideoURLs = append(s.VideoURLs, url)
	}
}

// MediaURLs walks the known payload shapes and collects every reachable image
// and video URL. Unknown payload types yield an empty set.
func MediaURLs(payload any) MediaURLSet {
	var set MediaURLSet

	switch p := payload.(type) {
	case *MainPayload:
		for _, post := range p.Posts {
			set.addImage(post.MainImage)
			for _, shot := range post.Screenshots {
				set.addImage(shot)
			}
			if post.Video != nil {
				set.addImage(post.Video.Thumbnail)
				set.addVideo(post.Video.URL)
			}
		}
	case *CollectionsPayload:
		for _, col := range p.Collections {
			set.addImage(col.Cover)
			for _, item := range col.Items {
				set.addImage(item.Image)
			}
		}
	case *ScreenshotsPayload:
		for _, group := range p.Groups {
			for _, img := range group.Images {
				set.addImage(img)
			}
		}
	case *VideosPayload:
		for _, v := range p.Videos {
			set.addImage(v.Thumbnail)
			set.addVideo(v.URL)
		}
	case *HistoryPayload:
		for _, entry := range p.Entries {
			for _, img := range entry.Images {
				set.addImage(img)
			}
		}
	case *AboutPayload:
		set.addImage(p.Profile.Avatar)
	}

	return set
}
