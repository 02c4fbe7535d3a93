package main

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/0x0FACED/go-fortune/internal/config"
	"github.com/0x0FACED/go-fortune/pkg/logger"
	"github.com/0x0FACED/go-fortune/pkg/render"
	"github.com/0x0FACED/go-fortune/pkg/voronoi"
	"github.com/0x0FACED/go-fortune/static"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type server struct {
	defaults config.Diagram
	log      *logger.ZapLogger
}

type ctxKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID помечает каждый запрос uuid, он же уходит в заголовок ответа
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("[http] Запрос обработан",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.accessLog)

	r.Get("/", s.diagramHandler)
	r.Post("/", s.diagramHandler)
	r.Get("/svg", s.svgHandler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

// parseParams накладывает параметры формы (или query) на значения по умолчанию.
// Флажки приходят только когда включены, поэтому для них пустая форма - это false.
func parseParams(r *http.Request, defaults config.Diagram) (config.Diagram, error) {
	if err := r.ParseForm(); err != nil {
		return defaults, errors.Wrap(err, "parse form")
	}
	if len(r.Form) == 0 {
		return defaults, nil
	}

	p := defaults
	ints := []struct {
		key string
		dst *int
	}{{"width", &p.Width}, {"height", &p.Height}, {"stations", &p.Stations}}
	for _, f := range ints {
		v := r.Form.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return defaults, errors.Wrapf(err, "field %s", f.key)
		}
		*f.dst = n
	}
	if v := r.Form.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return defaults, errors.Wrap(err, "field seed")
		}
		p.Seed = n
	}
	p.Random = r.Form.Get("random") == "true"
	p.Delaunay = r.Form.Get("delaunay") == "true"
	p.Hull = r.Form.Get("hull") == "true"

	if err := p.Validate(); err != nil {
		return defaults, err
	}
	return p, nil
}

func query(p config.Diagram) url.Values {
	q := url.Values{}
	q.Set("width", strconv.Itoa(p.Width))
	q.Set("height", strconv.Itoa(p.Height))
	q.Set("stations", strconv.Itoa(p.Stations))
	q.Set("seed", strconv.FormatInt(p.Seed, 10))
	for key, on := range map[string]bool{"random": p.Random, "delaunay": p.Delaunay, "hull": p.Hull} {
		if on {
			q.Set(key, "true")
		}
	}
	return q
}

func buildDiagram(p config.Diagram, log *logger.ZapLogger) (*voronoi.Diagram, error) {
	var stations []voronoi.Point
	if p.Random {
		stations = generateRandStations(p.Stations, p.Width, p.Height, p.Seed)
	} else {
		stations = generateFixStations(p.Stations, p.Width, p.Height)
	}
	bbox := voronoi.NewBoundingBox(0, float64(p.Width), 0, float64(p.Height))
	return voronoi.CreateDiagram(stations, bbox, voronoi.WithLogger(log))
}

// http обработчик страницы с диаграмой и формой для ввода данных
func (s *server) diagramHandler(w http.ResponseWriter, r *http.Request) {
	// логи запроса пишутся в буфер и показываются на странице
	reqLog := logger.New().With(zap.String("request_id", requestIDFrom(r.Context())))
	defer reqLog.ClearLogs()

	form := static.FormValues{MaxStations: config.MaxStations}
	p, err := parseParams(r, s.defaults)
	if err != nil {
		reqLog.Warn("[http] Некорректные параметры", zap.Error(err))
		form.Error = err.Error()
	}
	form.Width, form.Height, form.Stations, form.Seed = p.Width, p.Height, p.Stations, p.Seed
	form.Random, form.Delaunay, form.Hull = p.Random, p.Delaunay, p.Hull
	form.Query = template.URL(query(p).Encode())

	diagram, err := buildDiagram(p, reqLog)
	if err != nil {
		reqLog.Error("[f] Диаграмма не построена", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := static.WriteHead(w, form); err != nil {
		s.log.Error("[http] Ошибка шаблона", zap.Error(err))
		return
	}

	scatter := render.Chart(diagram, render.ChartOptions{Delaunay: p.Delaunay, Hull: p.Hull})
	if err := scatter.Render(w); err != nil {
		s.log.Error("[http] Ошибка рендеринга диаграммы", zap.Error(err))
	}

	io.WriteString(w, static.Part2)
	// Вставляем логи в HTML
	for _, log := range reqLog.Logs() {
		io.WriteString(w, log)
	}
	io.WriteString(w, static.Part3)
}

func (s *server) svgHandler(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.With(zap.String("request_id", requestIDFrom(r.Context())))

	p, err := parseParams(r, s.defaults)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	diagram, err := buildDiagram(p, reqLog)
	if err != nil {
		reqLog.Error("[f] Диаграмма не построена", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	err = render.WriteSVG(w, diagram, render.SVGOptions{
		Width:    p.Width,
		Height:   p.Height,
		Regions:  true,
		Delaunay: p.Delaunay,
		Hull:     p.Hull,
	})
	if err != nil {
		reqLog.Error("[svg] Ошибка записи", zap.Error(err))
	}
}
