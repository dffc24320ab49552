// Package templatepack loads drawing template packs: named bundles of page
// geometry, style tokens and reusable SVG symbols.
//
// # Storage Layout
//
// A template root contains one directory per pack:
//
//	<root>/<id>[@<version>]/manifest.json
//	<root>/<id>[@<version>]/symbols/*.svg
//
// [Loader.Load] resolves an id by scanning the configured roots in order. A
// directory named exactly <id> wins over versioned directories; among
// versioned directories (<id>@<version>) the lexically greatest name wins.
//
// Manifests may declare page dimensions either as width_mm/height_mm or in the
// legacy width/height/unit form. Missing style tokens are filled with defaults
// so the renderer never has to check for them.
//
// # Built-in Packs
//
// [BuiltinRoot] exposes the packs embedded in the binary: basic-a3,
// basic-letter, STD-A3-IPC620 and STD-Letter-IPC620. Configured directories
// are normally listed before it so deployments can override a built-in pack.
//
// # Caching
//
// Loaded packs are memoized in a [MemoCache] injected into the loader, so
// tests and processes can isolate or share caches explicitly. Entries live
// until [Loader.ClearCache]; [Watcher] calls it when a template directory
// changes on disk.
package templatepack
