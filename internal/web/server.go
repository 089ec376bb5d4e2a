// ABOUTME: HTTP form handler for entering ITB measurements and downloading exports.
// ABOUTME: Renders the bilingual form and history; streams xlsx/pdf/csv/json/yaml/markdown files.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/harperreed/itb/internal/export"
	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/harperreed/itb/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	// Lang is the default language when the request expresses no preference.
	Lang i18n.Lang
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server serves the ITB form.
type Server struct {
	svc   *service.Service
	tmpl  *template.Template
	log   *slog.Logger
	mux   *http.ServeMux
	lang  atomic.Value // i18n.Lang
	nowFn func() time.Time
}

// New creates a Server wired to svc and registers all routes.
func New(svc *service.Service, opts Options) (*Server, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"itb": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		svc:   svc,
		tmpl:  tmpl,
		log:   opts.Logger,
		mux:   http.NewServeMux(),
		nowFn: time.Now,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.SetDefaultLang(opts.Lang)

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	s.mux.HandleFunc("GET /{$}", s.withLogging(s.index))
	s.mux.HandleFunc("POST /{$}", s.withLogging(s.submit))
	s.mux.HandleFunc("GET /export/{format}", s.withLogging(s.export))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// SetDefaultLang changes the fallback language; safe while serving.
func (s *Server) SetDefaultLang(lang i18n.Lang) {
	if lang == "" {
		lang = i18n.Default
	}
	s.lang.Store(lang)
}

func (s *Server) defaultLang() i18n.Lang {
	return s.lang.Load().(i18n.Lang)
}

// requestLang picks ?lingua= (the form's parameter), then ?lang=, then
// Accept-Language, then the configured default.
func (s *Server) requestLang(r *http.Request) i18n.Lang {
	for _, key := range []string{"lingua", "lang"} {
		if lang, ok := i18n.Parse(r.URL.Query().Get(key)); ok {
			return lang
		}
	}
	return i18n.Match(r.Header.Get("Accept-Language"), s.defaultLang())
}

// pageData feeds templates/index.html.
type pageData struct {
	T        *i18n.Table
	Lang     i18n.Lang
	Other    i18n.Lang
	Result   string
	IsError  bool
	History  []historyRow
	Patients []string
	Form     service.SubmitInput
	Phases   []phaseOption
}

type historyRow struct {
	Name           string
	RecordID       string
	Date           string
	ITB            float64
	Phase          string
	Classification string
}

type phaseOption struct {
	Value    models.Phase
	Label    string
	Selected bool
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)
	s.render(w, http.StatusOK, lang, "", false, service.SubmitInput{})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)
	t := i18n.For(lang)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	in := service.SubmitInput{
		Name:          r.PostForm.Get("nome"),
		RecordID:      r.PostForm.Get("registro"),
		ArmPressure:   r.PostForm.Get("pressao_braco"),
		AnklePressure: r.PostForm.Get("pressao_tornozelo"),
		Phase:         r.PostForm.Get("momento"),
	}

	res, err := s.svc.Submit(in)
	if err != nil {
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			s.log.Error("submit failed", "error", err)
			http.Error(w, t.ErrStorage, http.StatusInternalServerError)
			return
		}
		s.render(w, http.StatusUnprocessableEntity, lang, t.ErrorMessage(err), true, in)
		return
	}

	s.log.Info("measurement saved", "id", res.Record.ID, "classification", res.Evaluation.Classification)
	s.render(w, http.StatusOK, lang, t.ResultMessage(res.Evaluation), false, service.SubmitInput{})
}

func (s *Server) render(w http.ResponseWriter, status int, lang i18n.Lang, result string, isErr bool, form service.SubmitInput) {
	t := i18n.For(lang)

	summaries, err := s.svc.Summaries()
	if err != nil {
		s.log.Error("list history failed", "error", err)
		http.Error(w, t.ErrStorage, http.StatusInternalServerError)
		return
	}
	patients, err := s.svc.Patients()
	if err != nil {
		s.log.Error("list patients failed", "error", err)
		http.Error(w, t.ErrStorage, http.StatusInternalServerError)
		return
	}

	data := pageData{
		T:        t,
		Lang:     lang,
		Other:    otherLang(lang),
		Result:   result,
		IsError:  isErr,
		Patients: patients,
		Form:     form,
	}
	if data.Result == "" {
		data.Result = t.ResultHint
	}

	selected, _ := models.ParsePhase(form.Phase)
	for _, p := range models.AllPhases {
		data.Phases = append(data.Phases, phaseOption{Value: p, Label: t.PhaseText(p), Selected: p == selected})
	}

	for _, sm := range summaries {
		data.History = append(data.History, historyRow{
			Name:           sm.PatientName,
			RecordID:       sm.RecordID,
			Date:           sm.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			ITB:            sm.ITB,
			Phase:          t.PhaseText(sm.Phase),
			Classification: t.Classification(sm.Classification()),
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.log.Error("render template failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)
	t := i18n.For(lang)

	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	name := r.URL.Query().Get("nome")
	data, err := s.svc.Export(format, name, export.Options{Lang: lang, Now: s.nowFn})
	if errors.Is(err, export.ErrNoDataToExport) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(t.NoData))
		return
	}
	if err != nil {
		s.log.Error("export failed", "format", format, "error", err)
		http.Error(w, t.ErrStorage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	_, _ = w.Write(data)
}

func otherLang(lang i18n.Lang) i18n.Lang {
	if lang == i18n.PT {
		return i18n.EN
	}
	return i18n.PT
}
