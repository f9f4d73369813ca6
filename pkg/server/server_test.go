package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hkazuakey/lucene-gosen/pkg/dictionary"
	"github.com/hkazuakey/lucene-gosen/pkg/tagger"
	"github.com/hkazuakey/lucene-gosen/pkg/tokenizer"
)

func testTagger(t *testing.T) *tagger.Tagger {
	t.Helper()
	d, err := dictionary.Load("")
	if err != nil {
		t.Fatalf("Load embedded: %v", err)
	}
	return tagger.New(tokenizer.New(d, "未知語", false))
}

func runServer(t *testing.T, reqs ...AnalyzeRequest) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range reqs {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	s := NewServer(testTagger(t), &in, &out)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return msgpack.NewDecoder(&out)
}

func TestServerHandshakeAndAnalyze(t *testing.T) {
	dec := runServer(t,
		AnalyzeRequest{ID: "a1", Text: "大根を食べる。"},
		AnalyzeRequest{ID: "a2", Text: ""},
	)

	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "ready" {
		t.Fatalf("status = %q, want ready", status.Status)
	}

	var first AnalyzeResponse
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first response: %v", err)
	}
	if first.ID != "a1" || first.Error != "" {
		t.Fatalf("response = %+v", first)
	}
	if first.Count != 4 || len(first.Tokens) != 4 {
		t.Fatalf("got %d tokens, want 4", first.Count)
	}
	if tk := first.Tokens[0]; tk.Surface != "大根" || tk.Start != 0 || tk.End != 2 || !tk.SentenceStart {
		t.Fatalf("first token = %+v", tk)
	}
	if first.Tokens[1].Feature == "" {
		t.Fatal("feature string missing")
	}

	var second AnalyzeResponse
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if second.ID != "a2" || second.Count != 0 || second.Error != "" {
		t.Fatalf("empty-text response = %+v", second)
	}
}

func TestServerStopsAtEOF(t *testing.T) {
	var in, out bytes.Buffer
	s := NewServer(testTagger(t), &in, &out)
	if err := s.Start(); err != nil {
		t.Fatalf("Start on empty input: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var status StatusResponse
	if err := dec.Decode(&status); err != nil || status.Status != "ready" {
		t.Fatalf("handshake missing: %v %+v", err, status)
	}
}
