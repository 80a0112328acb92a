package app

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/registry/std"

	"github.com/jmoiron/mctext/chat"
	"github.com/jmoiron/mctext/internal/app/mcformat"
	"github.com/jmoiron/mctext/markup"
)

// maxBody caps API request bodies.
const maxBody = 1 << 20

type App struct {
	Parser  *markup.Parser
	Verbose int
	tpl     *template.Template
}

//go:embed templates/*.gohtml static/*
var templatesFS embed.FS

func New(p *markup.Parser, verbose int) (*App, error) {
	if p == nil {
		p = markup.NewParser()
	}
	a := &App{Parser: p, Verbose: verbose}

	sub, _ := fs.Sub(templatesFS, "templates")
	sh := sprout.New()
	if err := sh.AddRegistries(std.NewRegistry()); err != nil {
		return nil, err
	}
	funcs := sh.Build()
	funcs["mc"] = func(s string) template.HTML { return mcformat.Format(s) }
	funcs["render"] = func(d markup.Document) template.HTML { return mcformat.HTML(d) }
	tpl, err := template.New("base").Funcs(funcs).ParseFS(sub, "*.gohtml")
	if err != nil {
		return nil, err
	}
	a.tpl = tpl
	return a, nil
}

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if a.Verbose > 0 {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	mime.AddExtensionType(".css", "text/css")
	staticFS, _ := fs.Sub(templatesFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", a.index)
	r.Post("/", a.index)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", a.apiParse)
		r.Post("/serialize", a.apiSerialize)
		r.Post("/strip", a.apiStrip)
		r.Post("/escape", a.apiEscape)
		r.Post("/substitute", a.apiSubstitute)
		r.Post("/legacy/from", a.apiFromLegacy)
		r.Post("/legacy/to", a.apiToLegacy)
		r.Post("/component", a.apiComponent)
		r.Post("/component/decode", a.apiDecodeComponent)
	})
	return r
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// baseData returns common template data.
func (a *App) baseData(r *http.Request, title string) map[string]any {
	// ?dark=true wins over the theme cookie set by the client toggle
	themeDark := false
	if v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("dark"))); v != "" {
		if v == "1" || v == "true" || v == "t" || v == "yes" || v == "on" {
			themeDark = true
		}
	} else if c, err := r.Cookie("theme"); err == nil && c != nil && c.Value == "dark" {
		themeDark = true
	}
	return map[string]any{
		"Title":     title,
		"ThemeDark": themeDark,
		"Colors":    markup.Colors,
	}
}

// index handles GET and POST "/". The markup comes from the "text" form
// value and is previewed alongside its other encodings.
func (a *App) index(w http.ResponseWriter, r *http.Request) {
	data := a.baseData(r, "mctext")
	text := r.FormValue("text")
	data["Input"] = text
	if text == "" {
		a.render(w, "index.gohtml", data)
		return
	}
	doc, err := a.Parser.Parse(text)
	if err != nil {
		data["Error"] = err.Error()
		a.render(w, "index.gohtml", data)
		return
	}
	data["Document"] = doc
	data["Markup"] = markup.Serialize(doc)
	data["Plain"] = doc.PlainText()
	data["Legacy"] = mcformat.ToLegacy(doc)
	if b, err := chat.Marshal(doc); err == nil {
		data["JSON"] = string(b)
	}
	a.render(w, "index.gohtml", data)
}

type textRequest struct {
	Text         string              `json:"text"`
	Placeholders markup.Placeholders `json:"placeholders,omitempty"`
}

type documentResponse struct {
	Document markup.Document `json:"document"`
	Markup   string          `json:"markup"`
	Plain    string          `json:"plain"`
}

func newDocumentResponse(doc markup.Document) documentResponse {
	return documentResponse{Document: doc, Markup: markup.Serialize(doc), Plain: doc.PlainText()}
}

// apiParse handles POST /api/parse.
func (a *App) apiParse(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	doc, err := a.Parser.Parse(markup.Substitute(req.Text, req.Placeholders))
	if err != nil {
		writeParseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDocumentResponse(doc))
}

// apiSerialize handles POST /api/serialize.
func (a *App) apiSerialize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document markup.Document `json:"document"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"markup": markup.Serialize(req.Document)})
}

func (a *App) apiStrip(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": markup.Strip(req.Text)})
}

func (a *App) apiEscape(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": markup.Escape(req.Text)})
}

func (a *App) apiSubstitute(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": markup.Substitute(req.Text, req.Placeholders)})
}

// apiFromLegacy handles POST /api/legacy/from, converting '&' or '§' codes.
func (a *App) apiFromLegacy(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, newDocumentResponse(mcformat.FromLegacy(req.Text)))
}

// apiToLegacy handles POST /api/legacy/to.
func (a *App) apiToLegacy(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	doc, err := a.Parser.Parse(markup.Substitute(req.Text, req.Placeholders))
	if err != nil {
		writeParseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": mcformat.ToLegacy(doc)})
}

// apiComponent handles POST /api/component. ?format=snbt returns SNBT text
// instead of a JSON component.
func (a *App) apiComponent(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	doc, err := a.Parser.Parse(markup.Substitute(req.Text, req.Placeholders))
	if err != nil {
		writeParseError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "snbt" {
		s, err := chat.MarshalSNBT(doc)
		if err != nil {
			slog.Error("error encoding snbt", "error", err)
			writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"snbt": s})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"component": chat.Encode(doc)})
}

// apiDecodeComponent handles POST /api/component/decode.
func (a *App) apiDecodeComponent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Component json.RawMessage `json:"component"`
	}
	if !decode(w, r, &req) {
		return
	}
	doc, err := chat.Unmarshal(req.Component)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, newDocumentResponse(doc))
}

// decode reads a JSON request body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("error decoding request", "path", r.URL.Path, "error", err)
		writeError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]any{"ok": false, "error": msg})
}

// writeParseError reports a markup error as 422 along with its kind.
func writeParseError(w http.ResponseWriter, err error) {
	var pe *markup.ParseError
	if !errors.As(err, &pe) {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	code := http.StatusUnprocessableEntity
	if errors.Is(err, markup.ErrInputTooLarge) {
		code = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, code, map[string]any{
		"ok":     false,
		"error":  err.Error(),
		"kind":   pe.Err.Error(),
		"tag":    pe.Tag,
		"offset": pe.Offset,
	})
}
