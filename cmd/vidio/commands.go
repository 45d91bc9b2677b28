package main

// commandSet lists every registry candidate in display order.
func commandSet(ctx *commandContext) []any {
	return []any{
		listCommand{ctx: ctx},
		infoCommand{ctx: ctx},
		trimCommand{ctx: ctx},
		resizeCommand{ctx: ctx},
		cropCommand{ctx: ctx},
		concatCommand{ctx: ctx},
		gridCommand{ctx: ctx},
		toGIFCommand{ctx: ctx},
		configCommand{ctx: ctx},
	}
}
