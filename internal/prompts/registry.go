// Package prompts holds the component descriptions shown to the LLM and
// assembles the selection prompts from them.
package prompts

import (
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Metadata describes one component to the LLM. Every fragment can be
// overridden from configuration.
type Metadata struct {
	Description         string `json:"description"`
	OneStepExample      string `json:"onestep_example,omitempty"`
	TwoStepStep2Example string `json:"twostep_step2_example,omitempty"`
	TwoStepStep2Rules   string `json:"twostep_step2_rules,omitempty"`

	ChartDescription    string `json:"chart_description,omitempty"`
	ChartFieldsSpec     string `json:"chart_fields_spec,omitempty"`
	ChartRules          string `json:"chart_rules,omitempty"`
	ChartInlineExamples string `json:"chart_inline_examples,omitempty"`
}

// apply returns m with every set fragment of o replacing the default.
func (m Metadata) apply(o *config.ComponentPromptOverride) Metadata {
	if o == nil {
		return m
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&m.Description, o.Description)
	set(&m.OneStepExample, o.OneStepExample)
	set(&m.TwoStepStep2Example, o.TwoStepStep2Example)
	set(&m.TwoStepStep2Rules, o.TwoStepStep2Rules)
	set(&m.ChartDescription, o.ChartDescription)
	set(&m.ChartFieldsSpec, o.ChartFieldsSpec)
	set(&m.ChartRules, o.ChartRules)
	set(&m.ChartInlineExamples, o.ChartInlineExamples)
	return m
}

const listRules = `Select fields that hold arrays: every data_path must contain [*] so each field resolves to one value per item.`

// DefaultMetadata returns the built-in description of every dynamic component.
func DefaultMetadata() map[domain.Component]Metadata {
	return map[domain.Component]Metadata{
		domain.ComponentOneCard: {
			Description:         "component to visualize multiple fields of one item. Supports an image. Not for arrays of items.",
			OneStepExample:      `{"title": "Toy Story", "reasonForTheComponentSelection": "One movie with several fields", "confidenceScore": "85%", "component": "one-card", "fields": [{"name": "Title", "data_path": "movie.title"}, {"name": "Year", "data_path": "movie.year"}, {"name": "Poster", "data_path": "movie.posterUrl"}]}`,
			TwoStepStep2Example: `{"title": "Toy Story", "fields": [{"name": "Title", "data_path": "movie.title"}, {"name": "Year", "data_path": "movie.year"}]}`,
			TwoStepStep2Rules:   "Select 2 to 6 of the most relevant fields of the item. Include an image URL field when one exists.",
		},
		domain.ComponentImage: {
			Description:         "component to show one image. Use it only when the user asks for an image, poster or picture and the data holds an image URL.",
			OneStepExample:      `{"title": "Toy Story Poster", "reasonForTheComponentSelection": "User asked for the poster", "confidenceScore": "90%", "component": "image", "fields": [{"name": "Poster", "data_path": "movie.posterUrl"}]}`,
			TwoStepStep2Example: `{"title": "Toy Story Poster", "fields": [{"name": "Poster", "data_path": "movie.posterUrl"}]}`,
			TwoStepStep2Rules:   "Select exactly one field holding the image URL.",
		},
		domain.ComponentVideoPlayer: {
			Description:         "component to play one video. Use it only when the user asks to play or watch a video and the data holds a video URL such as a YouTube link.",
			OneStepExample:      `{"title": "Toy Story Trailer", "reasonForTheComponentSelection": "User asked to play the trailer", "confidenceScore": "90%", "component": "video-player", "fields": [{"name": "Trailer", "data_path": "movie.trailerUrl"}]}`,
			TwoStepStep2Example: `{"title": "Toy Story Trailer", "fields": [{"name": "Trailer", "data_path": "movie.trailerUrl"}]}`,
			TwoStepStep2Rules:   "Select exactly one field holding the video URL.",
		},
		domain.ComponentAudioPlayer: {
			Description:         "component to play one audio file. Use it only when the user asks to play or listen and the data holds an .mp3 URL.",
			OneStepExample:      `{"title": "Theme Song", "reasonForTheComponentSelection": "User asked to listen to the song", "confidenceScore": "85%", "component": "audio-player", "fields": [{"name": "Audio", "data_path": "song.audioUrl"}, {"name": "Cover", "data_path": "song.coverUrl"}]}`,
			TwoStepStep2Example: `{"title": "Theme Song", "fields": [{"name": "Audio", "data_path": "song.audioUrl"}]}`,
			TwoStepStep2Rules:   "Select the field holding the audio URL and optionally one image field.",
		},
		domain.ComponentTable: {
			Description:         "component to compare multiple fields across an array of items, one row per item.",
			OneStepExample:      `{"title": "Movies", "reasonForTheComponentSelection": "Several movies to compare", "confidenceScore": "80%", "component": "table", "fields": [{"name": "Title", "data_path": "movies[*].title"}, {"name": "Year", "data_path": "movies[*].year"}]}`,
			TwoStepStep2Example: `{"title": "Movies", "fields": [{"name": "Title", "data_path": "movies[*].title"}, {"name": "Year", "data_path": "movies[*].year"}]}`,
			TwoStepStep2Rules:   listRules + " Select 3 to 8 fields that best answer the user query.",
		},
		domain.ComponentSetOfCards: {
			Description:         "component to show an array of items as cards, each with a title and optionally an image.",
			OneStepExample:      `{"title": "Movies", "reasonForTheComponentSelection": "Several movies with posters", "confidenceScore": "75%", "component": "set-of-cards", "fields": [{"name": "Title", "data_path": "movies[*].title"}, {"name": "Poster", "data_path": "movies[*].posterUrl"}]}`,
			TwoStepStep2Example: `{"title": "Movies", "fields": [{"name": "Title", "data_path": "movies[*].title"}, {"name": "Poster", "data_path": "movies[*].posterUrl"}]}`,
			TwoStepStep2Rules:   listRules + " Name the item label field \"Title\" or \"Name\".",
		},
		domain.ComponentChartBar: {
			Description:         "bar chart comparing numeric values across categories.",
			ChartDescription:    "Compare numeric values across categories, for example revenue per movie.",
			ChartFieldsSpec:     "first field is the category (x axis), each further field is one numeric series (y axis).",
			ChartRules:          "Use at least 2 fields. Series fields must be numeric.",
			ChartInlineExamples: `{"component": "chart-bar", "fields": [{"name": "Movie", "data_path": "movies[*].title"}, {"name": "Rating", "data_path": "movies[*].rating"}]}`,
		},
		domain.ComponentChartLine: {
			Description:         "line chart showing how numeric values change over time or another ordered dimension.",
			ChartDescription:    "Show trends over an ordered dimension such as dates or weeks.",
			ChartFieldsSpec:     "first field is the ordered x axis, further fields are numeric series. For several series nested in an array use [series name, x, y] paths through both arrays.",
			ChartRules:          "Use at least 2 fields. Prefer line over bar when the x axis is time.",
			ChartInlineExamples: `{"component": "chart-line", "fields": [{"name": "Movie", "data_path": "movies[*].title"}, {"name": "Week", "data_path": "movies[*].weeks[*].week"}, {"name": "Revenue", "data_path": "movies[*].weeks[*].revenue"}]}`,
		},
		domain.ComponentChartPie: {
			Description:         "pie chart showing the share of each distinct value.",
			ChartDescription:    "Show how often each distinct value occurs, as parts of a whole.",
			ChartFieldsSpec:     "exactly one field; its values are counted.",
			ChartRules:          "Use exactly 1 field holding categorical values.",
			ChartInlineExamples: `{"component": "chart-pie", "fields": [{"name": "Genre", "data_path": "movies[*].genres"}]}`,
		},
		domain.ComponentChartDonut: {
			Description:         "donut chart showing the share of each distinct value, with a total in the center.",
			ChartDescription:    "Same as pie, preferred when a total is meaningful.",
			ChartFieldsSpec:     "exactly one field; its values are counted.",
			ChartRules:          "Use exactly 1 field holding categorical values.",
			ChartInlineExamples: `{"component": "chart-donut", "fields": [{"name": "Status", "data_path": "tickets[*].status"}]}`,
		},
		domain.ComponentChartMirroredBar: {
			Description:         "mirrored bar chart comparing two metrics per category side by side.",
			ChartDescription:    "Compare two metrics with different scales per category, for example budget versus revenue.",
			ChartFieldsSpec:     "exactly three fields: category, first metric, second metric.",
			ChartRules:          "Use exactly 3 fields. Both metric fields must be numeric.",
			ChartInlineExamples: `{"component": "chart-mirrored-bar", "fields": [{"name": "Movie", "data_path": "movies[*].title"}, {"name": "Budget", "data_path": "movies[*].budget"}, {"name": "Revenue", "data_path": "movies[*].revenue"}]}`,
		},
	}
}
