/*
Package session runs machines step by step across calls.

A Manager keeps each execution as a domain.Session in a ports.SessionStore,
so a client can start a run, advance it a few transitions at a time and
inspect it in between. Access to one session is serialized in-process and,
with WithLocker, across processes sharing the store.
*/
package session
