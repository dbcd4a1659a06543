package transform

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

var imageExtensions = map[string]bool{
	"apng": true, "png": true, "avif": true, "gif": true, "jpg": true, "jpeg": true,
	"pjpeg": true, "pjp": true, "svg": true, "webp": true, "bmp": true, "tif": true, "tiff": true,
}

var videoExtensions = map[string]bool{"mp4": true, "webm": true, "ogv": true, "mov": true}

// extension returns the lowercase file extension of a URL or file path,
// ignoring any query string or fragment.
func extension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := path.Ext(p)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func isImageURL(v any) bool {
	s, ok := v.(string)
	return ok && imageExtensions[extension(s)]
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "/")
}

// isLinkPath reports whether the last key of a data path names a URL or link.
func isLinkPath(dataPath string) bool {
	last := dataPath
	if i := strings.LastIndex(last, "."); i >= 0 {
		last = last[i+1:]
	}
	if i := strings.Index(last, "["); i >= 0 {
		last = last[:i]
	}
	last = strings.ToLower(last)
	return strings.HasSuffix(last, "url") || strings.HasSuffix(last, "link")
}

// findImageField returns the index of the field holding image URLs and its
// first image value, or -1. Fields whose values carry an image extension win
// over fields whose path merely ends in "url" or "link".
func findImageField(fields []domain.DataField) (int, string) {
	for i, f := range fields {
		for _, v := range f.Data {
			if isImageURL(v) {
				return i, v.(string)
			}
		}
	}
	for i, f := range fields {
		if !isLinkPath(f.DataPath) {
			continue
		}
		for _, v := range f.Data {
			if s, ok := v.(string); ok && looksLikeURL(s) {
				return i, s
			}
		}
	}
	return -1, ""
}

func newImage() *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentImage,
		build: func(base domain.ComponentDataBase, _ domain.ComponentMetadata, fields []domain.DataField, _ any) (domain.ComponentData, error) {
			_, img := findImageField(fields)
			return &domain.ComponentDataImage{ComponentDataBase: base, Image: img}, nil
		},
		check: func(cd domain.ComponentData, _ domain.ComponentMetadata, errs []domain.ValidationError) []domain.ValidationError {
			if cd.(*domain.ComponentDataImage).Image == "" {
				errs = append(errs, domain.ValidationError{Code: "image.notFound", Message: "no image URL found in the selected fields"})
			}
			return errs
		},
	}
}

func newVideo() *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentVideoPlayer,
		build: func(base domain.ComponentDataBase, _ domain.ComponentMetadata, fields []domain.DataField, _ any) (domain.ComponentData, error) {
			for _, f := range fields {
				for _, v := range f.Data {
					s, ok := v.(string)
					if !ok {
						continue
					}
					if isYouTube(s) {
						id := youTubeID(s)
						if id == "" {
							return nil, domain.Errorf(domain.CodeCannotRenderVideo, "unrecognised YouTube URL %q", s)
						}
						return &domain.ComponentDataVideo{
							ComponentDataBase: base,
							Video:             "https://www.youtube.com/embed/" + id,
							VideoImg:          fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id),
						}, nil
					}
					if videoExtensions[extension(s)] {
						cd := &domain.ComponentDataVideo{ComponentDataBase: base, Video: s}
						if _, img := findImageField(fields); img != "" {
							cd.VideoImg = img
						}
						return cd, nil
					}
				}
			}
			return nil, domain.Errorf(domain.CodeCannotRenderVideo, "no video URL found in the selected fields")
		},
	}
}

func isYouTube(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	return host == "youtube.com" || host == "youtu.be" || host == "youtube-nocookie.com"
}

// youTubeID extracts the video id from watch, embed, shorts and youtu.be URLs.
func youTubeID(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case host == "youtu.be":
		return segs[0]
	case u.Query().Get("v") != "":
		return u.Query().Get("v")
	case len(segs) == 2 && (segs[0] == "embed" || segs[0] == "shorts" || segs[0] == "v"):
		return segs[1]
	}
	return ""
}

func newAudio() *fieldTransformer {
	return &fieldTransformer{
		component: domain.ComponentAudioPlayer,
		build: func(base domain.ComponentDataBase, _ domain.ComponentMetadata, fields []domain.DataField, _ any) (domain.ComponentData, error) {
			cd := &domain.ComponentDataAudio{ComponentDataBase: base}
			audioIdx := -1
		search:
			for i, f := range fields {
				for _, v := range f.Data {
					if s, ok := v.(string); ok && extension(s) == "mp3" {
						cd.Audio = s
						audioIdx = i
						break search
					}
				}
			}
			_, cd.Image = findImageField(without(fields, audioIdx))
			return cd, nil
		},
		check: func(cd domain.ComponentData, _ domain.ComponentMetadata, errs []domain.ValidationError) []domain.ValidationError {
			if cd.(*domain.ComponentDataAudio).Audio == "" {
				errs = append(errs, domain.ValidationError{Code: "audio.notFound", Message: "no .mp3 URL found in the selected fields"})
			}
			return errs
		},
	}
}
