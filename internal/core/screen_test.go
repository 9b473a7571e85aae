package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with unstyled spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("GetCell(%d, %d) = %+v, expected an unstyled space", x, y, c)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)
	c := Cell{Rune: '▀', FG: ColorMint, BG: ColorDeepSea, Styled: true}

	s.SetCell(5, 5, c)
	if got := s.GetCell(5, 5); got != c {
		t.Errorf("GetCell(5, 5) = %+v, expected %+v", got, c)
	}

	// Out of bounds should be silent
	s.SetCell(-1, 0, c)
	s.SetCell(100, 0, c)
	s.SetCell(0, -1, c)
	s.SetCell(0, 100, c)

	if got := s.GetCell(-1, 0); got.Rune != ' ' || got.Styled {
		t.Errorf("out of bounds GetCell() = %+v, expected an unstyled space", got)
	}
}

func TestScreenSetFGKeepsBackground(t *testing.T) {
	s := NewScreen(4, 1)
	s.SetCell(0, 0, Cell{Rune: ' ', BG: ColorWarning, Styled: true})

	s.SetFG(0, 0, 'x', ColorInk)
	got := s.GetCell(0, 0)
	if got.Rune != 'x' || got.FG != ColorInk || got.BG != ColorWarning {
		t.Errorf("GetCell(0, 0) = %+v, expected x on the existing background", got)
	}

	// unstyled cells get the default backdrop
	s.SetFG(1, 0, 'y', ColorInk)
	if got := s.GetCell(1, 0); got.BG != ColorDefaultB || !got.Styled {
		t.Errorf("GetCell(1, 0) = %+v, expected the default background", got)
	}
}

func TestScreenDrawTextFG(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextFG(7, 1, "Scene", ColorMuted)

	if got := s.String(); got != strings.Repeat(" ", 10)+"\n       Sce" {
		t.Errorf("String() = %q, expected text clipped at the right edge", got)
	}
	if got := s.GetCell(7, 1).FG; got != ColorMuted {
		t.Errorf("FG = %v, expected %v", got, ColorMuted)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			s.SetCell(x, y, Cell{Rune: 'X', FG: ColorInk, Styled: true})
		}
	}

	s.Clear()

	if got := s.String(); got != "   \n   \n   " {
		t.Errorf("String() after Clear() = %q, expected blanks", got)
	}
	if s.GetCell(1, 1).Styled {
		t.Error("Clear() should drop styles")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	marked := Cell{Rune: 'A', FG: ColorTeal, Styled: true}
	s.SetCell(5, 5, marked)

	s.Resize(20, 20)
	if s.Width() != 20 || s.Height() != 20 {
		t.Errorf("After resize: %dx%d, expected 20x20", s.Width(), s.Height())
	}
	if got := s.GetCell(5, 5); got != marked {
		t.Errorf("Content not preserved after resize: got %+v", got)
	}

	// Shrink past the marked cell
	s.Resize(4, 4)
	if got := s.GetCell(5, 5); got.Rune != ' ' {
		t.Errorf("GetCell outside the shrunk screen = %q, expected space", got.Rune)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetCell(0, 0, Cell{Rune: 'A'})
	s.SetCell(1, 0, Cell{Rune: 'B'})
	s.SetCell(2, 0, Cell{Rune: 'C'})
	s.SetCell(0, 1, Cell{Rune: 'D'})
	s.SetCell(1, 1, Cell{Rune: 'E'})
	s.SetCell(2, 1, Cell{Rune: 'F'})

	if got := s.String(); got != "ABC\nDEF" {
		t.Errorf("String() = %q, expected %q", got, "ABC\nDEF")
	}
}
