// Package cli provides the interactive grain command-line client.
//
// The terminal stands in for the app's screens. The entry screen ("/")
// offers login; the tab screens ("/(tabs)/home", "/(tabs)/search" and
// "/(tabs)/profile") show the photo feed, search results and the signed-in
// profile. Which screens are reachable is decided by the session store's
// route guard, re-evaluated on every session transition.
//
// Commands
//
//	Entry screen:
//	  - login                 authenticate with username and password
//	  - help, exit | quit
//
//	Tab screens:
//	  - home                  greeting and the first page of the feed
//	  - more                  load the next page of the current list
//	  - refresh               reload page 1 of the current list
//	  - retry                 repeat the request that failed
//	  - search <query>        search photos
//	  - profile               show the signed-in user
//	  - logout                sign out (asks for confirmation)
//	  - help, exit | quit
//
// App.Run blocks until the user exits or input ends.
package cli
