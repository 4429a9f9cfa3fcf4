package viacep

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/41000000/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"logradouro":"Rua das Flores","bairro":"Centro","localidade":"Salvador","uf":"BA"}`)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Lookup(context.Background(), "41000000")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := Address{Street: "Rua das Flores", District: "Centro", City: "Salvador", State: "BA"}
	if *got != want {
		t.Fatalf("address = %+v, want %+v", got, want)
	}
}

func TestLookup_UnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"erro": true}`)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Lookup(context.Background(), "99999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookup_InvalidCode(t *testing.T) {
	c := NewClient("http://unused.invalid")
	for _, cep := range []string{"", "4100000", "410000000", "41000-00", "abcdefgh"} {
		if _, err := c.Lookup(context.Background(), cep); !errors.Is(err, ErrInvalidCEP) {
			t.Fatalf("cep %q: expected ErrInvalidCEP, got %v", cep, err)
		}
	}
}

func TestLookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Lookup(context.Background(), "41000000"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	if c := NewClient(""); c.baseURL != DefaultBaseURL {
		t.Fatalf("baseURL = %s", c.baseURL)
	}
}
