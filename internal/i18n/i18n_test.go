package i18n

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse normalizes language codes", t, func() {
		So(Parse("en"), ShouldEqual, English)
		So(Parse("hi"), ShouldEqual, Hindi)
		So(Parse("mr"), ShouldEqual, Marathi)

		Convey("unknown codes fall back to English", func() {
			So(Parse("fr"), ShouldEqual, English)
			So(Parse(""), ShouldEqual, English)
		})
	})
}

func TestResponseLanguage(t *testing.T) {
	Convey("ResponseLanguage maps codes to instruction names", t, func() {
		So(ResponseLanguage("en"), ShouldEqual, "English")
		So(ResponseLanguage("hi"), ShouldEqual, "Hindi (हिंदी)")
		So(ResponseLanguage("mr"), ShouldEqual, "Marathi (मराठी)")

		Convey("unsupported codes become English, not an error", func() {
			So(ResponseLanguage("fr"), ShouldEqual, "English")
		})
	})
}

func TestT(t *testing.T) {
	Convey("T looks up UI strings", t, func() {
		So(T(English, "hero.title"), ShouldEqual, "Protect Your Crops with AI")
		So(T(Hindi, "library.title"), ShouldEqual, "रोग पुस्तकालय")
		So(T(Marathi, "nav.news"), ShouldEqual, "बातम्या")

		Convey("missing keys fall back to English, then the key itself", func() {
			So(T(Language("fr"), "hero.title"), ShouldEqual, "Protect Your Crops with AI")
			So(T(English, "no.such.key"), ShouldEqual, "no.such.key")
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Table returns a detached copy", t, func() {
		tbl := Table(Hindi)
		So(tbl["app.name"], ShouldEqual, "एग्री मित्र")

		tbl["app.name"] = "mutated"
		So(T(Hindi, "app.name"), ShouldEqual, "एग्री मित्र")
	})
}
