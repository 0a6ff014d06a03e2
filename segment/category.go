package segment

// Category tags a segment with the kind of content it covers.
type Category string

// Known categories, in the order they are registered in configuration.
const (
	Sponsor       Category = "sponsor"
	Intro         Category = "intro"
	Outro         Category = "outro"
	Interaction   Category = "interaction"
	SelfPromo     Category = "selfpromo"
	Preview       Category = "preview"
	Filler        Category = "filler"
	MusicOfftopic Category = "music_offtopic"
)

// Info is how a category is painted and announced.
type Info struct {
	Color   string
	Opacity string
	Name    string
}

var infos = map[Category]Info{
	Sponsor:       {Color: "#00d400", Opacity: "0.7", Name: "sponsored segment"},
	Intro:         {Color: "#00ffff", Opacity: "0.7", Name: "intro"},
	Outro:         {Color: "#0202ed", Opacity: "0.7", Name: "outro"},
	Interaction:   {Color: "#cc00ff", Opacity: "0.7", Name: "interaction reminder"},
	SelfPromo:     {Color: "#ffff00", Opacity: "0.7", Name: "self-promotion"},
	Preview:       {Color: "#008fd6", Opacity: "0.7", Name: "recap or preview"},
	Filler:        {Color: "#7300FF", Opacity: "0.9", Name: "tangents"},
	MusicOfftopic: {Color: "#ff9900", Opacity: "0.7", Name: "non-music part"},
}

// Known returns every category the controller has a color and config toggle for.
func Known() []Category {
	return []Category{Sponsor, Intro, Outro, Interaction, SelfPromo, Preview, Filler, MusicOfftopic}
}

// Lookup returns the display info of a known category.
func Lookup(c Category) (Info, bool) {
	info, ok := infos[c]
	return info, ok
}

// Describe returns the display info of any category.
// Unknown categories are painted blue and announced by their raw name.
func Describe(c Category) Info {
	if info, ok := infos[c]; ok {
		return info
	}
	return Info{Color: "blue", Opacity: "0.7", Name: string(c)}
}
