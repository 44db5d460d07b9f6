// Package dataset produces and loads the 2-D point sets fed to the engines.
//
// Generators take an explicit *rand.Rand so experiments are reproducible;
// CSV helpers read and write one "x,y" pair per line.
package dataset
