// Providers starts a set of fake provider endpoints for trying the filter
// by hand and writes a matching providers file.
//
// Usage:
//
//	go run providers.go -port 8081 -out providers.json
//
// Endpoints, all on the same listener:
//   - /ok        200
//   - /redirect  302 to /gone
//   - /missing   404
//   - /broken    500
//   - /slow      answers after 10s, longer than the default probe timeout
//
// The written file also carries one entry without a url and one pointing
// at a closed port, so a filter run should keep exactly /ok and /redirect.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type entry struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func main() {
	port := flag.Int("port", 8081, "port to listen on")
	out := flag.String("out", "providers.json", "providers file to write")
	flag.Parse()

	base := fmt.Sprintf("http://127.0.0.1:%d", *port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/redirect", http.RedirectHandler("/gone", http.StatusFound))
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
			w.WriteHeader(http.StatusOK)
		}
	})

	entries := []entry{
		{Name: "ok", URL: base + "/ok"},
		{Name: "redirect", URL: base + "/redirect"},
		{Name: "missing", URL: base + "/missing"},
		{Name: "broken", URL: base + "/broken"},
		{Name: "slow", URL: base + "/slow"},
		{Name: "closed", URL: fmt.Sprintf("http://127.0.0.1:%d/", *port+1000)},
		{Name: "no-url"},
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Fatalf("encode providers: %v", err)
	}
	if err := os.WriteFile(*out, b, 0644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %d providers to %s", len(entries), *out)

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	log.Printf("starting fake providers on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
