package main

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Seed demo data when enabled, then start the HTTP server.
func main() {
	Execute()
}
