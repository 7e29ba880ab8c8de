package layout

import (
	"html/template"

	hb "github.com/gouniverse/hb"
)

// Options bundles parameters for rendering the full HTML layout.
type Options struct {
	Title        string
	BasePath     string
	MainHTML     string
	ExtraHead    []hb.TagInterface
	ExtraBodyEnd []hb.TagInterface
}

// RenderWith builds the full HTML page using the provided options and
// returns it as a safe HTML string.
func RenderWith(o Options) template.HTML {
	headChildren := []hb.TagInterface{
		hb.NewTag("meta").Attr("charset", "utf-8"),
		hb.NewTag("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		hb.NewTag("title").Text(o.Title + " · Gridbase"),
	}
	if len(o.ExtraHead) > 0 {
		headChildren = append(headChildren, o.ExtraHead...)
	}

	header := hb.Header().
		Class("gb-header").
		Child(
			hb.Div().
				Class("gb-container").
				Children([]hb.TagInterface{
					hb.Heading1().
						Class("gb-title").
						Child(hb.A().Href(o.BasePath).Text("Gridbase")),
					hb.Nav().Class("gb-nav").Child(
						hb.A().Href(o.BasePath).Text("Tables"),
					),
				}),
		)

	main := hb.Main().Class("gb-main").
		Child(hb.Div().Class("gb-container").
			Child(hb.Raw(o.MainHTML)))

	footer := hb.Footer().Class("gb-footer gb-container").Child(
		hb.NewTag("small").Text("Gridbase table editor"),
	)

	bodyChildren := []hb.TagInterface{
		header,
		main,
		footer,
	}
	if len(o.ExtraBodyEnd) > 0 {
		bodyChildren = append(bodyChildren, o.ExtraBodyEnd...)
	}

	html := hb.NewTag("html").
		Attr("lang", "en").
		Children([]hb.TagInterface{
			hb.NewTag("head").Children(headChildren),
			hb.NewTag("body").Children(bodyChildren),
		})

	return template.HTML("<!doctype html>" + html.ToHTML())
}
