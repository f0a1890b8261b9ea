package scene

// Palette is the 10-color cycle used for satellite visuals.
var Palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Color returns the color for satellite index i. The mapping is
// deterministic: index modulo palette size.
func Color(i int) string {
	return Palette[i%len(Palette)]
}
