package main

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bedwards/wdi-go/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reports</title>
<style>
  body { font-family: Inter, -apple-system, sans-serif; margin: 40px; color: #334155; }
  h1 { font-size: 20px; }
  li { margin: 6px 0; }
  a { color: #1f77b4; }
</style>
</head>
<body>
<h1>Rendered Reports</h1>
{{if .}}
<ul>
{{range .}}<li><a href="/reports/{{.}}">{{.}}</a></li>
{{end}}</ul>
{{else}}
<p>No reports yet. Run the render command first.</p>
{{end}}
</body>
</html>
`))

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	outDir := appConfig.Output.Dir

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		reports, err := listReports(outDir)
		if err != nil {
			http.Error(w, "failed to list reports", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, reports); err != nil {
			log.Printf("Failed to render index: %v", err)
		}
	})

	fileServer := http.StripPrefix("/reports/", http.FileServer(http.Dir(outDir)))
	r.Get("/reports/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	addr := ":" + appConfig.Server.Port
	log.Printf("Serving reports from %s on http://localhost%s", outDir, addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// listReports returns the HTML report filenames in the output directory,
// sorted by name.
func listReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var reports []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".html") {
			reports = append(reports, entry.Name())
		}
	}
	sort.Strings(reports)
	return reports, nil
}
