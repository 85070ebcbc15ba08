package version

// AppName and AppVersion identify the bot in logs and the about command.
// AppVersion is overridable at build time via -ldflags "-X ...".
var (
	AppName    = "MusicMonkey"
	AppVersion = "dev"
)
