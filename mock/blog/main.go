package main

import (
	_ "embed"
	"log"
	"net/http"
	"time"
)

//go:embed data.json
var jsonData []byte

func main() {
	http.HandleFunc("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (100-300ms)
		time.Sleep(time.Duration(100+time.Now().UnixNano()%200) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Feed", "blog")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(jsonData); err != nil {
			log.Printf("[Blog] Write error: %v", err)
		}

		log.Printf("[Blog] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Blog] Health write error: %v", err)
		}
	})

	log.Println("Mock blog feed running on :8082")
	server := &http.Server{
		Addr:         ":8082",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
