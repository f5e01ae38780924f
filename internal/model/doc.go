// Package model holds the color model enumeration and its range policy.
//
// The table is data: which models exist, their three channel names, which
// range variants are declared, and which variants each model is generated
// for. The built-in table is embedded from models.yaml. Alternate tables
// are loaded with LoadFile and pass the same validation.
package model
