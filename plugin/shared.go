// Package plugin serves and loads rule sources that run out of process.
//
// A rule source plugin is a standalone binary that calls Serve. The host
// finds such binaries with Discover and starts one the first time a
// feature loads its package. Both sides agree on Handshake and PluginMap.

package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// ProtocolVersion is bumped whenever the RuleSource service changes
// incompatibly. Hosts refuse plugins built against another version.
const ProtocolVersion = 1

// MagicCookieKey and MagicCookieValue are set in the environment of every
// plugin the host starts. A rule source binary run by hand lacks them and
// prints its description instead of serving.
const (
	MagicCookieKey   = "FLATLINT_PLUGIN_MAGIC_COOKIE"
	MagicCookieValue = "flatlint-plugin-v1"
)

// Handshake identifies flatlint rule source plugins to go-plugin.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   MagicCookieKey,
	MagicCookieValue: MagicCookieValue,
}

// PluginName is the key a rule source is dispensed under.
const PluginName = "rulesource"

// PluginMap lists what a rule source binary serves: exactly one
// RuleSourcePlugin.
var PluginMap = map[string]plugin.Plugin{
	PluginName: &RuleSourcePlugin{},
}
