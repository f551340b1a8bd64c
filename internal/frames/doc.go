// Package frames renders calendar PNG frames from a CSV manifest: a big day
// number, month and lunar details, an auto-fitted main text block, and a
// footer over a stretched background image. One frame per row, named by the
// row's date.
package frames
