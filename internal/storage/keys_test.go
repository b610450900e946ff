package storage

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestObjectKeys(t *testing.T) {
	c := qt.New(t)

	c.Assert(ImageKey(12, 3, "Sofa.PNG"), qt.Equals, "products/12/images/product-12-image-3.png")
	c.Assert(ImageKey(5, 1, "noext"), qt.Equals, "products/5/images/product-5-image-1.bin")
	c.Assert(ModelKey(9, ModelGLB), qt.Equals, "products/9/ar/product-9-model.glb")
	c.Assert(ModelKey(9, ModelFormatOf("chair.reality")), qt.Equals, "products/9/ar/product-9-model.usdz")
}

func TestModelFormatOf(t *testing.T) {
	c := qt.New(t)

	c.Assert(ModelFormatOf("lamp.GLB"), qt.Equals, ModelGLB)
	c.Assert(ModelFormatOf("lamp.usdz"), qt.Equals, ModelUSDZ)
	c.Assert(ModelFormatOf("lamp.reality"), qt.Equals, ModelUSDZ)
}

func TestContentTypes(t *testing.T) {
	c := qt.New(t)

	c.Assert(ImageContentType("a.jpg"), qt.Equals, "image/jpeg")
	c.Assert(ImageContentType("a.webp"), qt.Equals, "image/webp")
	c.Assert(ModelContentType(ModelGLB), qt.Equals, "model/gltf-binary")
	c.Assert(ModelContentType(ModelUSDZ), qt.Equals, "model/vnd.usdz+zip")
}

func TestIsExternal(t *testing.T) {
	c := qt.New(t)

	c.Assert(IsExternal("/placeholder.svg"), qt.IsTrue)
	c.Assert(IsExternal("https://x/y"), qt.IsTrue)
	c.Assert(IsExternal("http://x/y"), qt.IsTrue)
	c.Assert(IsExternal("products/1/ar/product-1-model.glb"), qt.IsFalse)
}
