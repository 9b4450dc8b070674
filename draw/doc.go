// Package draw renders computation graphs as text diagrams.
//
// Two interchangeable syntaxes are supported, Graphviz DOT and Mermaid
// flowcharts, selected through the options store. Rendering is strictly
// one-way: the package reads node kinds, edges and the target set, and
// nothing flows back into the graph.
package draw
