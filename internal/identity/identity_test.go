package identity

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSource(t *testing.T) {
	Convey("Source notifies subscribers of identity changes", t, func() {
		src := NewSource()

		var seen []*Identity
		cancel := src.Subscribe(func(id *Identity) {
			seen = append(seen, id)
		})

		Convey("subscription fires immediately with the current identity", func() {
			So(seen, ShouldHaveLength, 1)
			So(seen[0], ShouldBeNil)
		})

		Convey("Set notifies and Current reflects the change", func() {
			src.Set(&Identity{UserID: "u1", Email: "kisan@example.com"})
			So(seen, ShouldHaveLength, 2)
			So(seen[1].UserID, ShouldEqual, "u1")
			So(src.Current().Email, ShouldEqual, "kisan@example.com")
		})

		Convey("setting the same identity again does not re-notify", func() {
			src.Set(&Identity{UserID: "u1", Email: "kisan@example.com"})
			src.Set(&Identity{UserID: "u1", Email: "kisan@example.com"})
			So(seen, ShouldHaveLength, 2)
		})

		Convey("logout is delivered as nil", func() {
			src.Set(&Identity{UserID: "u1", Email: "kisan@example.com"})
			src.Set(nil)
			So(seen[len(seen)-1], ShouldBeNil)
			So(src.Current(), ShouldBeNil)
		})

		Convey("cancel stops further notifications", func() {
			cancel()
			src.Set(&Identity{UserID: "u2"})
			So(seen, ShouldHaveLength, 1)
		})
	})
}
