// cursor glyph creation forked from
// https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xscene

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const LeftPtr = 68

func CreateCursor(x *xgb.Conn, cursor uint16) (xproto.Cursor, error) {
	fontId, err := xproto.NewFontId(x)
	if err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(x)
	if err != nil {
		return 0, err
	}

	err = xproto.OpenFontChecked(x, fontId,
		uint16(len("cursor")), "cursor").Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CreateGlyphCursorChecked(x, cursorId, fontId, fontId,
		cursor, cursor+1,
		0xffff, 0xffff, 0xffff,
		0, 0, 0).Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CloseFontChecked(x, fontId).Check()
	if err != nil {
		return 0, err
	}

	return cursorId, nil
}
