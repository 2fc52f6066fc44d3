package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the app:
// folio.js, folio.css, favicon.svg and the default profile portrait.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

var embeddedAssetNames = []string{"folio.js", "folio.css", "favicon.svg", "profile.svg"}
