package raftchat

// palette is the fixed username color set shared with the reference web
// client. Same username, same color, in every client.
var palette = []string{
	"#332626",
	"#cc8533",
	"#a68500",
	"#245900",
	"#4d998a",
	"#002966",
	"#140033",
	"#331a2e",
	"#cc0036",
	"#993626",
	"#33210d",
	"#becc00",
	"#2ca600",
	"#103d40",
	"#265499",
	"#8f66cc",
	"#59003c",
	"#401016",
	"#734939",
	"#b39e86",
	"#a1b359",
	"#1d331a",
	"#33adcc",
	"#8f9cbf",
	"#4f4359",
	"#cc3399",
	"#b25965",
	"#bf4d00",
	"#734d00",
	"#657356",
	"#66cc8f",
	"#23698c",
	"#3600cc",
	"#550080",
	"#a67c8d",
}

// hashString is the rolling hash the web client uses: h = h*31 + code
// over the string's code points, wrapped to a signed 32-bit integer.
// The empty string hashes to 0.
func hashString(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

func colorIndex(s string) int {
	h := int64(hashString(s))
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(palette)))
}

// ColorFor returns a stable hex color for a username. The mapping is
// total: every string, including the empty string, gets a color.
func ColorFor(user string) string {
	return palette[colorIndex(user)]
}
