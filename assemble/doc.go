// Package assemble produces the finished files of a contest: per-judge
// packets, per-category files, label sheets and blank form stacks.
//
// An Assembler reads templates named {CAT}_{Long|Short}.pdf from a
// TemplateSource. Templates that do not exist are skipped, so a contest
// without short forms simply gets none. Only active judges (printing, and
// numbered) and active competitors appear in any output.
//
// Several files from one call are bundled into a ZIP; a lone per-judge
// packet, the folder label sheet and the blank forms are returned bare.
package assemble
