package consts

// Set at link time with -ldflags "-X bitbucket.org/kleinnic74/lsgmap/consts.Version=..."
var (
	Version = "dev"
	GitRepo = "bitbucket.org/kleinnic74/lsgmap"
)

const AppName = "lsgmap"

func UserAgent() string {
	return AppName + "/" + Version + " (+" + GitRepo + ")"
}
