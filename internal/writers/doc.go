// Package writers turns a finished selection into report files.
//
// Design:
//   • Writers own all presentation knowledge (SMILES lines, CSV layouts).
//   • coverage stays domain-only; pipeline stays orchestration-only.
//   • Reports are rendered to temporary files and renamed into place only
//     when every report rendered, so a failed run leaves no partial output.
package writers
