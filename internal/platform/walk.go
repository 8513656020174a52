package platform

import (
	"time"

	"github.com/mj1618/inspector-gadget/internal/model"
)

// Walk visits node and all descendants depth-first, calling visit with each
// node and its role path from the surface root. Sibling order carries no
// semantic weight; callers must not rely on it.
func Walk(node Node, visit func(n Node, path string)) {
	walkRecursive(node, "", visit)
}

func walkRecursive(node Node, parentPath string, visit func(Node, string)) {
	path := node.Role()
	if parentPath != "" {
		path = parentPath + " > " + node.Role()
	}
	visit(node, path)
	for _, child := range node.Children() {
		walkRecursive(child, path, visit)
	}
}

// SnapshotLabels walks every active surface and collects all accessibility
// elements with a non-empty semantic label.
func SnapshotLabels(src TreeSource) model.Snapshot {
	surfaces := src.ActiveSurfaces()
	snap := model.Snapshot{
		TS:       time.Now().Unix(),
		Surfaces: len(surfaces),
	}
	for _, s := range surfaces {
		title := s.Title()
		Walk(s, func(n Node, path string) {
			for _, el := range n.Elements() {
				label := el.Label()
				if label == "" {
					continue
				}
				snap.Elements = append(snap.Elements, model.LabelEntry{
					ID:          el.ID(),
					Label:       label,
					Description: el.Description(),
					Surface:     title,
					Path:        path,
				})
			}
		})
	}
	return snap
}
