package data

import "math/rand"

// Names are first names given to the pedestrians wandering the world
var Names = []string{
	"James", "Robert", "Michael", "William", "David", "Richard", "Joseph",
	"Thomas", "Daniel", "Matthew", "Anthony", "Mark", "Paul", "Steven",
	"George", "Kevin", "Brian", "Edward", "Ryan", "Gary", "Eric", "Frank",
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan",
	"Sarah", "Karen", "Nancy", "Lisa", "Betty", "Sandra", "Ashley", "Emily",
	"Donna", "Carol", "Amanda", "Laura", "Amy", "Helen", "Anna", "Ruth", "Maria",
}

// RandomName picks a name with rng
func RandomName(rng *rand.Rand) string {
	return Names[rng.Intn(len(Names))]
}
