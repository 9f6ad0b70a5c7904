package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Daemon identifies the backend kind (torrent server protocol) an adapter targets.
type Daemon string

const (
	DaemonAria2         Daemon = "aria2"
	DaemonBitComet      Daemon = "bitcomet"
	DaemonBitflu        Daemon = "bitflu"
	DaemonBuffaloNas    Daemon = "buffalonas"
	DaemonDeluge        Daemon = "deluge"
	DaemonDLinkRouterBT Daemon = "dlinkrouterbt"
	DaemonDummy         Daemon = "dummy"
	DaemonKTorrent      Daemon = "ktorrent"
	DaemonQBittorrent   Daemon = "qbittorrent"
	DaemonRTorrent      Daemon = "rtorrent"
	DaemonSynology      Daemon = "synology"
	DaemonTfb4rt        Daemon = "tfb4rt"
	DaemonTransmission  Daemon = "transmission"
	DaemonUTorrent      Daemon = "utorrent"
	DaemonVuze          Daemon = "vuze"
)

var daemons = []Daemon{
	DaemonAria2, DaemonBitComet, DaemonBitflu, DaemonBuffaloNas, DaemonDeluge, DaemonDLinkRouterBT, DaemonDummy,
	DaemonKTorrent, DaemonQBittorrent, DaemonRTorrent, DaemonSynology, DaemonTfb4rt, DaemonTransmission,
	DaemonUTorrent, DaemonVuze,
}

func (d Daemon) String() string { return string(d) }

// Daemons returns every known backend kind.
func Daemons() []Daemon {
	out := make([]Daemon, len(daemons))
	copy(out, daemons)
	return out
}

// ParseDaemon converts a case-insensitive backend name into a [Daemon].
func ParseDaemon(s string) (Daemon, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, d := range daemons {
		if string(d) == want {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown daemon type %q", s)
}

// DaemonSettings is the configuration an adapter is constructed with.
type DaemonSettings struct {
	Name     string `toml:"name"`
	Type     Daemon `toml:"type"`
	Address  string `toml:"address"`
	Port     int    `toml:"port"`
	SSL      bool   `toml:"ssl"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Folder   string `toml:"folder"`
	Timeout  int    `toml:"timeout"` // seconds
}

// HumanReadableIdentifier returns user@address:port, leaving out the parts that are not set.
func (s DaemonSettings) HumanReadableIdentifier() string {
	host := s.Address
	if s.Port > 0 {
		host = host + ":" + strconv.Itoa(s.Port)
	}
	if s.Username != "" {
		return s.Username + "@" + host
	}
	return host
}

// BaseURL returns the web address of the daemon, including the configured folder.
func (s DaemonSettings) BaseURL() string {
	if s.Address == "" {
		return ""
	}
	scheme := "http"
	if s.SSL {
		scheme = "https"
	}
	u := scheme + "://" + s.Address
	if s.Port > 0 {
		u += ":" + strconv.Itoa(s.Port)
	}
	if s.Folder != "" {
		u += "/" + strings.Trim(s.Folder, "/")
	}
	return u
}
