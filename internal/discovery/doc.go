// Package discovery finds Oracle instances running on the local host by looking for
// their PMON background processes, e.g. `ora_pmon_FREE` or `asm_pmon_+ASM`.
package discovery
