package project

import "github.com/wilbur182/cutroom/internal/timeline"

// Demo returns the sequence seeded into fresh project files. It leans
// entirely on procedural assets so a new project renders without any
// files on disk.
func Demo() *timeline.Sequence {
	seq := &timeline.Sequence{
		Name:   "demo",
		FPS:    24,
		Width:  320,
		Height: 180,
		Tracks: []timeline.Track{
			{
				Name: "bg",
				Shots: []timeline.Shot{
					{
						Name:  "dawn",
						Start: 0, Duration: 96,
						Layers: []timeline.Layer{
							{Asset: "gradient:1a2b4a-f4a261", Opacity: 1, Scale: 0.5},
						},
					},
					{
						Name:  "day",
						Start: 96, Duration: 96,
						Layers: []timeline.Layer{
							{Asset: "gradient:87ceeb-e0f7ff", Opacity: 1, Scale: 0.5},
						},
					},
					{
						Name:  "bars",
						Start: 192, Duration: 48,
						Layers: []timeline.Layer{
							{Asset: "bars", Opacity: 1, Scale: 0.5},
						},
					},
				},
			},
			{
				Name: "mg",
				Shots: []timeline.Shot{
					{
						Name:  "grid",
						Start: 24, Duration: 144,
						Layers: []timeline.Layer{
							{Asset: "grid:24", Opacity: 0.35, Scale: 0.5},
						},
					},
				},
			},
			{
				Name: "fx",
				Shots: []timeline.Shot{
					{
						Name:  "grain",
						Start: 0, Duration: 240,
						Layers: []timeline.Layer{
							{Asset: "noise:7", Opacity: 0.08, Scale: 0.5},
						},
					},
				},
			},
		},
	}
	seq.Normalize()
	return seq
}
