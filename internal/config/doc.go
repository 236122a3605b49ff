// Package config loads and validates rivulet.json.
//
// A project configures the server, renderer, and export destination in
// a single JSON file at the project root:
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 8080},
//	  "render": {"pretty": true, "indent": "  "},
//	  "export": {"bucket": "my-site", "prefix": "v1/", "region": "us-east-1"}
//	}
//
// Every field is optional; Load fills in defaults for anything omitted.
package config
