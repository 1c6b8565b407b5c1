// Package app is the composition root for pitchdeck.
//
// # Overview
//
// Run wires configuration, logging, the Generation Service client, the
// download saver and user preferences together, then hands control to the
// TUI. Nothing here talks to the service; the UI checks it on startup and
// reports an unreachable backend in its header instead of refusing to start.
//
// # Startup
//
//	Run()
//	  ├─> config.Load()      config file, PITCHDECK_API_URL, defaults
//	  ├─> logging.Setup()    logrus to the log file
//	  ├─> docgen.NewClient() base URL resolved once here
//	  ├─> download.NewSaver()
//	  ├─> prefs.Load()       theme
//	  └─> ui.Run()           blocks until quit
//
// # Error Handling
//
// A config file that cannot be parsed, an invalid log level or an invalid
// api_url are fatal and returned from Run. A broken preferences file is
// logged and the default theme is used.
package app
