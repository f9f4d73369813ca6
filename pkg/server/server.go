package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hkazuakey/lucene-gosen/pkg/tagger"
)

// Server handles the IPC for morphological analysis.
type Server struct {
	tagger *tagger.Tagger
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// NewServer creates an analysis server reading requests from r and writing
// responses to w.
func NewServer(tg *tagger.Tagger, r io.Reader, w io.Writer) *Server {
	return &Server{
		tagger: tg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil when the input
// is exhausted.
func (s *Server) Start() error {
	log.Debug("starting analysis server")

	if err := s.enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("ready handshake: %w", err)
	}

	for {
		var req AnalyzeRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		if err := s.handleAnalyze(req); err != nil {
			return err
		}
	}
}

// handleAnalyze runs one request and writes its response.
func (s *Server) handleAnalyze(req AnalyzeRequest) error {
	started := time.Now()

	resp := AnalyzeResponse{ID: req.ID}
	tokens, err := s.tagger.Analyze(req.Text)
	if err != nil {
		log.Errorf("analysis failed for request %s: %v", req.ID, err)
		resp.Error = err.Error()
	} else {
		resp.Tokens = make([]TokenPayload, len(tokens))
		for i, tk := range tokens {
			resp.Tokens[i] = TokenPayload{
				Surface:       tk.Surface,
				Start:         tk.Start,
				End:           tk.End,
				Cost:          tk.Cost,
				Feature:       tk.Feature(),
				SentenceStart: tk.SentenceStart,
			}
		}
		resp.Count = len(tokens)
	}
	resp.TimeTaken = time.Since(started).Microseconds()

	if err := s.enc.Encode(resp); err != nil {
		return fmt.Errorf("encoding response %s: %w", req.ID, err)
	}
	return nil
}
