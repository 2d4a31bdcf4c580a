package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/colortelevision/midi-scale-conv/constants"
	"github.com/colortelevision/midi-scale-conv/midi"
	"github.com/colortelevision/midi-scale-conv/model"
	"github.com/colortelevision/midi-scale-conv/scale"
	"github.com/colortelevision/midi-scale-conv/transform"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", constants.GetAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the scale converter over HTTP",
	Long: `Serves the scale converter over HTTP.

  GET  /scales                    the scale catalog
  POST /detect                    body is a MIDI file, returns the detected keys
  POST /transform?from=..&to=..   body is a MIDI file, returns the transformed file`,
	Run: func(cmd *cobra.Command, args []string) {
		serve(addr)
	},
}

type ctxKey struct{}

func requestLog(r *http.Request) *logrus.Entry {
	if entry, ok := r.Context().Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		entry := logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		entry.Debug("Handling request")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, entry)))
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	requestLog(r).WithError(err).Warn("Request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func readPerformance(w http.ResponseWriter, r *http.Request) (model.Performance, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.GetMaxUploadBytes()))
	if err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, err)
		return model.Performance{}, false
	}
	perf, err := midi.Read(bytes.NewReader(body))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return model.Performance{}, false
	}
	return perf, true
}

func HandleScales(w http.ResponseWriter, r *http.Request) {
	res := make([]model.ScaleResponse, 0, len(scale.Catalog))
	for _, s := range scale.Catalog {
		res = append(res, model.ScaleResponse{Name: s.Name, Pattern: s.Pattern, Example: s.Example})
	}
	writeJSON(w, res)
}

func HandleDetect(w http.ResponseWriter, r *http.Request) {
	perf, ok := readPerformance(w, r)
	if !ok {
		return
	}

	var res model.DetectResponse
	res.Tracks = make([]model.TrackKeyResult, 0, len(perf.Tracks))
	for _, report := range transform.DetectKeys(perf) {
		tr := model.TrackKeyResult{Index: report.Index, Name: report.Name, NumNotes: report.NumNotes}
		if report.HasKey {
			k := report.Key
			tr.Key = &k
			tr.KeyName = report.KeyName()
		}
		res.Tracks = append(res.Tracks, tr)
	}
	if k, err := transform.PrimaryKey(perf); err == nil {
		res.Key = &k
		res.KeyName = model.PitchClassName(k)
	}
	writeJSON(w, res)
}

func HandleTransform(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source, err := scale.Find(query.Get("from"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	target, err := scale.Find(query.Get("to"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	perf, ok := readPerformance(w, r)
	if !ok {
		return
	}
	res, _, err := transform.Performance(perf, source.Pattern, target.Pattern)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	// encode fully before writing so a failure never sends half a file
	var buf bytes.Buffer
	if err := midi.Write(&buf, res); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="`+constants.DefaultOutputName+`"`)
	w.Write(buf.Bytes())
	requestLog(r).WithFields(logrus.Fields{
		"from":  source.Name,
		"to":    target.Name,
		"bytes": buf.Len(),
	}).Info("Transformed file")
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scales", HandleScales).Methods("GET")
	router.HandleFunc("/detect", HandleDetect).Methods("POST")
	router.HandleFunc("/transform", HandleTransform).Methods("POST")
	router.Use(withRequestID)

	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
	})
	return c.Handler(router)
}

func serve(addr string) {
	logrus.WithField("addr", addr).Info("Listening")
	logrus.Fatal(http.ListenAndServe(addr, NewRouter()))
}
