package config

var CategoryWeights = map[string]int{
	"🎵 Music":        0,
	"📂 Playlists":    10,
	"🏆 Social":       20,
	"⚙️ Settings":    30,
	"🕯️ Information": 40,
}
