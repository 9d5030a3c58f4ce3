// Package e2e exercises a fully wired controller — the speed and dashboard
// demo modules, the scheduler, and the introspection HTTP server — end to
// end through Ginkgo specs, rather than unit-testing packages in isolation.
//
// There is no container or external-process infrastructure here: the whole
// system under test is one in-process Controller, so the suite builds and
// tears one down per spec.
package e2e
