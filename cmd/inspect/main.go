package main

import (
	"fmt"
	"os"

	"mu-geom/internal/mathutil"
	"mu-geom/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <scene.json>")
		os.Exit(2)
	}
	s, err := scene.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Nodes: %d, Lines: %d, Triangles: %d\n", len(s.Nodes), len(s.Lines), len(s.Triangles))

	worlds := scene.WorldMatrices(s.Nodes)
	normals, ok := scene.NormalMatrices(worlds)
	for i, n := range s.Nodes {
		parent := -1
		if n.Parent != nil {
			parent = *n.Parent
		}
		w := worlds[i]
		fmt.Printf("  Node[%d] %q: parent=%d\n", i, n.Name, parent)
		fmt.Printf("    world: %s\n", mathutil.Mat3FromMat4(w))
		t := w.Translation()
		fmt.Printf("    translation: (%.3f, %.3f, %.3f)\n", t[0], t[1], t[2])
		fmt.Printf("    det: %.4f\n", mathutil.Mat3FromMat4(w).Det())
		if ok[i] {
			fmt.Printf("    normal: %s\n", normals[i])
		} else {
			fmt.Println("    normal: singular")
		}
	}

	world := s.Resolve()
	for i, l := range world.Lines {
		a, b := l.Line.Start, l.Line.End
		fmt.Printf("  Line[%d]: (%.2f, %.2f, %.2f) -> (%.2f, %.2f, %.2f) len=%.3f\n",
			i, a[0], a[1], a[2], b[0], b[1], b[2], l.Line.Magnitude())
	}
	for i, t := range world.Triangles {
		fmt.Printf("  Tri[%d]: normal=(%.3f, %.3f, %.3f) texture=%q blend=%d\n",
			i, t.Normal[0], t.Normal[1], t.Normal[2], t.Texture, t.Blend)
	}
}
