package config

const (
	defaultMusicRoot       = "~/ATLAS_ROOT/MUSIC/Rob Lackey"
	defaultPublicDir       = "~/ATLAS_ROOT/CODE/WEBSITES/VYNL.PRO/public"
	defaultGraphicsSubdir  = "graphics"
	defaultDiscographyDir  = ".discography"
	defaultStateDir        = "~/.local/share/vynlassets"
	defaultLogDir          = "~/.local/share/vynlassets/logs"
	defaultFriendsSubdir   = "graphics/friends"
	defaultAlbumArtSubdir  = "graphics/albums"
	defaultMusicSubdir     = "music"
	defaultProfileSource   = "bryant.jpg"
	defaultProfileDest     = "graphics/profile/main.jpg"
	defaultCoverMatch      = CoverMatchStrict
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultJournalFilename = "journal.db"
)

// Cover-art matching policies accepted by social.cover_match.
const (
	CoverMatchStrict = "strict"
	CoverMatchLegacy = "legacy"
)

// DefaultFriendsImages is the ordered Top 8 list. Position determines the
// numeric destination name, so reordering renames the published files.
var DefaultFriendsImages = []string{
	"ALBUM COVER IDEA - Ash and Static.png",
	"ALBUM COVER IDEA - Breaking Even With Ghosts.png",
	"ALBUM COVER IDEA - Come Sundown Raise Hell.png",
	"ALBUM COVER IDEA - Everything Tastes Like Whiskey.png",
	"ALBUM COVER IDEA - Falling Sky.png",
	"ALBUM COVER IDEA - Balcony Weather.png",
	"ALBUM COVER IDEA - Songs I Didn't Write.png",
	"ALBUM COVER IDEA - Ash and Static 2.png",
}

// DefaultAlbums returns the four published albums in processing order.
func DefaultAlbums() []Album {
	return []Album{
		{Name: "applause", Source: "Applause For The Apocalypse (2024)"},
		{Name: "lowfires", Source: "Low Fires LP (2025)/Masters"},
		{Name: "surrender", Source: "Surrender With A Smile (2022)"},
		{Name: "victory", Source: "Victory To The Villains (2023)/Masters"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	images := make([]string, len(DefaultFriendsImages))
	copy(images, DefaultFriendsImages)
	return Config{
		Paths: Paths{
			MusicRoot: defaultMusicRoot,
			PublicDir: defaultPublicDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Friends: Friends{
			DestSubdir: defaultFriendsSubdir,
			Images:     images,
		},
		Albums: DefaultAlbums(),
		Profile: Profile{
			Source: defaultProfileSource,
			Dest:   defaultProfileDest,
		},
		Social: Social{
			CoverMatch:     defaultCoverMatch,
			AlbumArtSubdir: defaultAlbumArtSubdir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
