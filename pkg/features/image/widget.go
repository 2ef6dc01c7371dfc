package image

import "github.com/editkit-dev/editkit/pkg/view"

// viewImgName is the tag of the functional view element.
const viewImgName = "img"

// maxScanDepth bounds the descent when locating the img inside a
// wrapper. Widget wrappers are shallow by construction; anything deeper
// is not ours to convert.
const maxScanDepth = 3

// FindViewImg returns the functional img element for a possibly
// decorated view element: the element itself when it is an img,
// otherwise the first img found among its descendants. Decoration
// siblings are skipped over, not reported as errors; nil means "not an
// image widget, do not convert".
func FindViewImg(el *view.Element) *view.Element {
	if el == nil {
		return nil
	}
	if el.Name() == viewImgName {
		return el
	}
	return scanForImg(el, maxScanDepth)
}

func scanForImg(el *view.Element, depth int) *view.Element {
	if depth == 0 {
		return nil
	}
	for _, child := range el.Children() {
		childEl, ok := child.(*view.Element)
		if !ok {
			continue
		}
		if childEl.Name() == viewImgName {
			return childEl
		}
		if found := scanForImg(childEl, depth-1); found != nil {
			return found
		}
	}
	return nil
}
