package network

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	. "github.com/smartystreets/goconvey/convey"
)

func response(encoding string, body []byte) *http.Response {
	resp := &http.Response{Header: make(http.Header), Body: io.NopCloser(bytes.NewReader(body))}
	if encoding != "" {
		resp.Header.Set("Content-Encoding", encoding)
	}
	return resp
}

func TestReadBody(t *testing.T) {
	Convey("ReadBody", t, func() {
		payload := []byte(`[{"category":"sponsor","segment":[1,2]}]`)

		Convey("Should pass plain bodies through", func() {
			body, err := ReadBody(response("", payload))
			So(err, ShouldBeNil)
			So(body, ShouldResemble, payload)
		})

		Convey("Should decode brotli", func() {
			var buf bytes.Buffer
			w := brotli.NewWriter(&buf)
			_, _ = w.Write(payload)
			So(w.Close(), ShouldBeNil)

			body, err := ReadBody(response("br", buf.Bytes()))
			So(err, ShouldBeNil)
			So(body, ShouldResemble, payload)
		})

		Convey("Should decode gzip", func() {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			_, _ = w.Write(payload)
			So(w.Close(), ShouldBeNil)

			body, err := ReadBody(response("gzip", buf.Bytes()))
			So(err, ShouldBeNil)
			So(body, ShouldResemble, payload)
		})

		Convey("Should reject unknown encodings", func() {
			_, err := ReadBody(response("zstd", payload))
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject oversized bodies", func() {
			_, err := ReadBody(response("", make([]byte, MaxBodySize+1)))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDecorate(t *testing.T) {
	Convey("Decorate sets provider headers", t, func() {
		req, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1:4040/x", nil)
		Decorate(req)
		So(req.Header.Get("Accept-Encoding"), ShouldEqual, "br, gzip")
		So(req.Header.Get("User-Agent"), ShouldStartWith, "segskip/")
	})
}
