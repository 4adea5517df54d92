package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"qrattend/internal/decode"
	"qrattend/internal/qr"
)

func TestBadgeContent(t *testing.T) {
	got, err := badgeContent("Colegio Norte", "42", "Lucia Perez")
	if err != nil {
		t.Fatalf("badgeContent: %v", err)
	}
	if got != "Colegio Norte,42,Lucia Perez" {
		t.Fatalf("content = %q", got)
	}

	for _, bad := range [][3]string{
		{"A;B", "1", "C"},
		{"A", "1|2", "C"},
		{"A", "", "C"},
	} {
		if _, err := badgeContent(bad[0], bad[1], bad[2]); err == nil {
			t.Errorf("badgeContent(%q) accepted", bad)
		}
	}
}

func TestBadgeCommandWritesDecodableImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "badge.png")
	rootCmd.SetArgs([]string{"badge", "--school", "Escuela Sur", "--id", "7", "--name", "Mateo Diaz", "-o", out})
	rootCmd.SetOut(io.Discard)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	img, err := decode.LoadImage(os.DirFS(dir), "badge.png")
	if err != nil {
		t.Fatalf("load badge: %v", err)
	}
	text, err := decode.NewDecoder().Decode(img)
	if err != nil {
		t.Fatalf("decode badge: %v", err)
	}
	fields, err := qr.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	if fields.StudentName != "Mateo Diaz" || fields.StudentID != "7" {
		t.Fatalf("fields = %+v", fields)
	}
}
